package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"localizei-backend/internal/money"
	"localizei-backend/internal/service"
)

type TransactionHandler struct {
	paymentSvc  service.PaymentService
	approvalSvc service.ApprovalService
}

func NewTransactionHandler(paymentSvc service.PaymentService, approvalSvc service.ApprovalService) *TransactionHandler {
	return &TransactionHandler{paymentSvc: paymentSvc, approvalSvc: approvalSvc}
}

type createTransactionRequest struct {
	StoreID string `json:"store_id"`
	// Amounts arrive the way the user typed them: comma decimal separator,
	// optional thousand dots ("1.234,56").
	TotalAmount    string `json:"total_amount"`
	CashbackAmount string `json:"cashback_amount"`
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.StoreID == "" {
		writeBadRequest(w, "store_id is required")
		return
	}

	totalCents, ok := money.ParseAmount(req.TotalAmount)
	if !ok {
		writeBadRequest(w, "total_amount is not a valid amount")
		return
	}
	cashbackCents, ok := money.ParseAmount(req.CashbackAmount)
	if !ok {
		writeBadRequest(w, "cashback_amount is not a valid amount")
		return
	}

	tx, err := h.paymentSvc.CreateTransaction(r.Context(), userIDFromContext(r.Context()), req.StoreID, totalCents, cashbackCents)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapTransaction(tx))
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	txID := mux.Vars(r)["id"]
	tx, err := h.paymentSvc.GetTransaction(r.Context(), userIDFromContext(r.Context()), txID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapTransaction(tx))
}

type transactionListResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	TotalCount   int32                 `json:"total_count"`
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paginationParams(r)
	txs, count, err := h.paymentSvc.ListCustomerTransactions(r.Context(), userIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionListResponse{
		Transactions: mapTransactions(txs),
		TotalCount:   count,
	})
}

func (h *TransactionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	txID := mux.Vars(r)["id"]
	tx, err := h.approvalSvc.Approve(r.Context(), userIDFromContext(r.Context()), txID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapTransaction(tx))
}

func (h *TransactionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	txID := mux.Vars(r)["id"]
	tx, err := h.approvalSvc.Reject(r.Context(), userIDFromContext(r.Context()), txID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapTransaction(tx))
}

// ListStorePending returns the store's queue of transactions awaiting the
// merchant's decision.
func (h *TransactionHandler) ListStorePending(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["id"]
	txs, err := h.approvalSvc.ListStorePending(r.Context(), userIDFromContext(r.Context()), storeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionListResponse{
		Transactions: mapTransactions(txs),
		TotalCount:   int32(len(txs)),
	})
}

func paginationParams(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
