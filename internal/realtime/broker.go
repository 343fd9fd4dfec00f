package realtime

import (
	"context"

	"localizei-backend/internal/domain"
)

// StatusEvent is one change notification for a transaction row. The
// merchant-side approval flow publishes one event per terminal transition;
// subscribers treat the event stream as the authoritative source of the
// row's status.
type StatusEvent struct {
	TransactionID string                   `json:"transaction_id"`
	Status        domain.TransactionStatus `json:"status"`
}

// Subscription is a live feed of status events for a single transaction.
// Close is idempotent; after Close no further events are delivered and
// Updates is closed.
type Subscription interface {
	Updates() <-chan StatusEvent
	Close()
}

// Broker fans status events out to per-transaction subscriptions.
type Broker interface {
	// Subscribe opens a feed scoped to one transaction id. The caller owns
	// the subscription and must Close it when the transaction is no longer
	// being watched.
	Subscribe(ctx context.Context, transactionID string) (Subscription, error)
	Publish(ctx context.Context, event StatusEvent) error
}
