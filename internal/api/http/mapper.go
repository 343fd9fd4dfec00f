package http

import (
	"time"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/money"
)

// Wire representations. All monetary fields are carried twice: as integer
// cents for programmatic use and as a pt-BR formatted string for display.

type transactionResponse struct {
	ID            string     `json:"id"`
	StoreID       string     `json:"store_id"`
	CustomerID    string     `json:"customer_id"`
	TotalCents    int64      `json:"total_cents"`
	Total         string     `json:"total"`
	CashbackCents int64      `json:"cashback_used_cents"`
	Cashback      string     `json:"cashback_used"`
	PayNowCents   int64      `json:"amount_to_pay_now_cents"`
	PayNow        string     `json:"amount_to_pay_now"`
	EarnCents     int64      `json:"cashback_to_earn_cents"`
	Earn          string     `json:"cashback_to_earn"`
	Status        string     `json:"status"`
	CreatedOn     time.Time  `json:"created_on"`
	ApprovedOn    *time.Time `json:"approved_on,omitempty"`
	RejectedOn    *time.Time `json:"rejected_on,omitempty"`
}

func mapTransaction(tx *domain.CashbackTransaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		StoreID:       tx.StoreID,
		CustomerID:    tx.CustomerID,
		TotalCents:    tx.TotalAmountCents,
		Total:         money.FormatCents(tx.TotalAmountCents),
		CashbackCents: tx.CashbackUsedCents,
		Cashback:      money.FormatCents(tx.CashbackUsedCents),
		PayNowCents:   tx.AmountToPayNowCents,
		PayNow:        money.FormatCents(tx.AmountToPayNowCents),
		EarnCents:     tx.CashbackToEarnCents,
		Earn:          money.FormatCents(tx.CashbackToEarnCents),
		Status:        string(tx.Status),
		CreatedOn:     tx.CreatedOn,
		ApprovedOn:    tx.ApprovedOn,
		RejectedOn:    tx.RejectedOn,
	}
}

func mapTransactions(txs []domain.CashbackTransaction) []transactionResponse {
	out := make([]transactionResponse, len(txs))
	for i := range txs {
		out[i] = mapTransaction(&txs[i])
	}
	return out
}

type storeResponse struct {
	ID              string    `json:"id"`
	MerchantID      string    `json:"merchant_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	CashbackPercent int64     `json:"cashback_percent"`
	Active          bool      `json:"active"`
	CreatedOn       time.Time `json:"created_on"`
}

func mapStore(s *domain.Store) storeResponse {
	return storeResponse{
		ID:              s.ID,
		MerchantID:      s.MerchantID,
		Name:            s.Name,
		Category:        s.Category,
		CashbackPercent: s.CashbackPercent,
		Active:          s.Active,
		CreatedOn:       s.CreatedOn,
	}
}

type walletEntryResponse struct {
	ID                   string    `json:"id"`
	Type                 string    `json:"type"`
	AmountCents          int64     `json:"amount_cents"`
	Amount               string    `json:"amount"`
	RelatedTransactionID *string   `json:"related_transaction_id,omitempty"`
	CreatedOn            time.Time `json:"created_on"`
}

func mapWalletEntries(entries []domain.WalletEntry) []walletEntryResponse {
	out := make([]walletEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = walletEntryResponse{
			ID:                   e.ID,
			Type:                 string(e.Type),
			AmountCents:          e.AmountCents,
			Amount:               money.FormatCents(e.AmountCents),
			RelatedTransactionID: e.RelatedTransactionID,
			CreatedOn:            e.CreatedOn,
		}
	}
	return out
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

func mapUser(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.PhoneNumber,
		Role:  string(u.Role),
	}
}
