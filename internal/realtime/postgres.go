package realtime

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"localizei-backend/internal/logger"

	"github.com/lib/pq"
)

// notifyChannel is the single Postgres NOTIFY channel carrying transaction
// status changes; events are fanned out locally by transaction id.
const notifyChannel = "cashback_tx_status"

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
)

// PostgresBroker distributes status events across processes over Postgres
// LISTEN/NOTIFY. Publish issues pg_notify; a pq.Listener receives the
// notifications (including our own) and dispatches them to local
// subscriptions, so every process sees one consistent event path.
type PostgresBroker struct {
	db       *sql.DB
	listener *pq.Listener
	local    *MemoryBroker
	done     chan struct{}
}

func NewPostgresBroker(db *sql.DB, connStr string) *PostgresBroker {
	listener := pq.NewListener(connStr, listenerMinReconnect, listenerMaxReconnect,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Error("Postgres listener event", "event", ev, "error", err)
			}
		})
	return &PostgresBroker{
		db:       db,
		listener: listener,
		local:    NewMemoryBroker(),
		done:     make(chan struct{}),
	}
}

// Start begins listening for notifications. It must be called once before
// any Subscribe delivers events.
func (b *PostgresBroker) Start() error {
	if err := b.listener.Listen(notifyChannel); err != nil {
		return err
	}
	go b.dispatchLoop()
	return nil
}

func (b *PostgresBroker) dispatchLoop() {
	for {
		select {
		case n := <-b.listener.Notify:
			if n == nil {
				// pq signals a reconnect with a nil notification; events
				// sent while disconnected are lost, so subscribers relying
				// on them should re-read the row after a gap.
				logger.Warn("Postgres listener reconnected, notifications may have been missed")
				continue
			}
			var event StatusEvent
			if err := json.Unmarshal([]byte(n.Extra), &event); err != nil {
				logger.Error("Discarding malformed status notification", "payload", n.Extra, "error", err)
				continue
			}
			_ = b.local.Publish(context.Background(), event)
		case <-b.done:
			return
		}
	}
}

func (b *PostgresBroker) Subscribe(ctx context.Context, transactionID string) (Subscription, error) {
	return b.local.Subscribe(ctx, transactionID)
}

func (b *PostgresBroker) Publish(ctx context.Context, event StatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = b.db.ExecContext(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, string(payload))
	return err
}

func (b *PostgresBroker) Close() error {
	close(b.done)
	return b.listener.Close()
}
