package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusApproved TransactionStatus = "APPROVED"
	TransactionStatusRejected TransactionStatus = "REJECTED"
)

// Terminal reports whether the status ends the transaction lifecycle.
// The only transitions are PENDING -> APPROVED and PENDING -> REJECTED.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusApproved || s == TransactionStatusRejected
}

// CashbackTransaction is a snapshot of the amounts negotiated at creation
// time. AmountToPayNowCents = TotalAmountCents - CashbackUsedCents holds at
// creation and is never recomputed; only Status and its timestamp change
// after the row is written.
type CashbackTransaction struct {
	ID                  string            `json:"id"`
	MerchantID          string            `json:"merchant_id"`
	StoreID             string            `json:"store_id"`
	CustomerID          string            `json:"customer_id"`
	TotalAmountCents    int64             `json:"total_amount_cents"`
	CashbackUsedCents   int64             `json:"cashback_used_cents"`
	CashbackToEarnCents int64             `json:"cashback_to_earn_cents"`
	AmountToPayNowCents int64             `json:"amount_to_pay_now_cents"`
	Status              TransactionStatus `json:"status"`
	CreatedOn           time.Time         `json:"created_on"`
	ApprovedOn          *time.Time        `json:"approved_on,omitempty"`
	RejectedOn          *time.Time        `json:"rejected_on,omitempty"`
}
