package http

import (
	"net/http"

	"localizei-backend/internal/money"
	"localizei-backend/internal/service"
)

type WalletHandler struct {
	walletSvc service.WalletService
}

func NewWalletHandler(walletSvc service.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

type balanceResponse struct {
	BalanceCents int64  `json:"balance_cents"`
	Balance      string `json:"balance"`
}

func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.walletSvc.GetBalance(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{
		BalanceCents: balance,
		Balance:      money.FormatCents(balance),
	})
}

type statementResponse struct {
	Entries    []walletEntryResponse `json:"entries"`
	TotalCount int32                 `json:"total_count"`
}

func (h *WalletHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paginationParams(r)
	entries, count, err := h.walletSvc.GetStatement(r.Context(), userIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statementResponse{
		Entries:    mapWalletEntries(entries),
		TotalCount: count,
	})
}
