package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"localizei-backend/internal/logger"
	"localizei-backend/internal/realtime"
	"localizei-backend/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
)

// WatchHandler streams status changes of a single transaction over a
// WebSocket. The connection is closed by the server once a terminal status
// has been delivered.
type WatchHandler struct {
	paymentSvc service.PaymentService
	broker     realtime.Broker
	upgrader   websocket.Upgrader
}

func NewWatchHandler(paymentSvc service.PaymentService, broker realtime.Broker) *WatchHandler {
	return &WatchHandler{
		paymentSvc: paymentSvc,
		broker:     broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Token auth already gates this endpoint; the app is not
			// served from a browser origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type statusMessage struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

func (h *WatchHandler) Watch(w http.ResponseWriter, r *http.Request) {
	txID := mux.Vars(r)["id"]

	// Authorization and the initial snapshot come from the same lookup.
	tx, err := h.paymentSvc.GetTransaction(r.Context(), userIDFromContext(r.Context()), txID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Subscribe before inspecting the snapshot so a decision landing in
	// between is not lost.
	sub, err := h.broker.Subscribe(r.Context(), txID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sub.Close()
		logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	defer sub.Close()

	conn.SetReadLimit(maxMessageSize)

	// Discard client messages; a read error means the client went away.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.writeStatus(conn, txID, string(tx.Status)); err != nil {
		return
	}
	if tx.Status.Terminal() {
		h.writeClose(conn)
		return
	}

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case event, ok := <-sub.Updates():
			if !ok {
				return
			}
			if err := h.writeStatus(conn, event.TransactionID, string(event.Status)); err != nil {
				return
			}
			if event.Status.Terminal() {
				h.writeClose(conn)
				return
			}
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-clientGone:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (h *WatchHandler) writeStatus(conn *websocket.Conn, txID, status string) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(statusMessage{TransactionID: txID, Status: status})
}

func (h *WatchHandler) writeClose(conn *websocket.Conn) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "transaction settled"))
}
