package push

import (
	"context"

	"localizei-backend/internal/domain"
)

// Sender delivers the "approve or reject" prompt to a merchant's device
// after a customer creates a pending transaction.
type Sender interface {
	SendApprovalRequest(ctx context.Context, deviceToken string, tx *domain.CashbackTransaction) error
}

// NoopSender is used when no push credentials are configured; merchants
// then rely on polling their pending transaction list.
type NoopSender struct{}

func (NoopSender) SendApprovalRequest(ctx context.Context, deviceToken string, tx *domain.CashbackTransaction) error {
	return nil
}
