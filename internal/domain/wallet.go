package domain

import "time"

type WalletEntryType string

const (
	WalletEntryCashbackEarned WalletEntryType = "CASHBACK_EARNED"
	WalletEntryCashbackSpent  WalletEntryType = "CASHBACK_SPENT"
	WalletEntryAdjustment     WalletEntryType = "ADJUSTMENT"
)

// WalletEntry is one line of a customer's cashback wallet. Amount is in
// cents, positive for credit and negative for debit; the wallet balance is
// the sum of all entries.
type WalletEntry struct {
	ID                   string          `json:"id"`
	CustomerID           string          `json:"customer_id"`
	AmountCents          int64           `json:"amount_cents"`
	Type                 WalletEntryType `json:"type"`
	RelatedTransactionID *string         `json:"related_transaction_id,omitempty"`
	Description          string          `json:"description"`
	CreatedOn            time.Time       `json:"created_on"`
}
