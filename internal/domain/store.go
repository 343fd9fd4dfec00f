package domain

import "time"

// Store is a merchant's storefront. CashbackPercent is a whole percentage
// applied to the cash-paid portion of a purchase (e.g. 5 means 5%).
type Store struct {
	ID              string    `json:"id"`
	MerchantID      string    `json:"merchant_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	CashbackPercent int64     `json:"cashback_percent"`
	Active          bool      `json:"active"`
	CreatedOn       time.Time `json:"created_on"`
}
