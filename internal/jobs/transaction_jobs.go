package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/logger"
	"localizei-backend/internal/money"
	"localizei-backend/internal/realtime"
	"localizei-backend/internal/repository"
)

// ExpireStalePendingTransactions rejects transactions that sat in PENDING
// longer than the configured TTL. Merchants who never answered the approval
// request simply time out; the customer's balance was never touched, so a
// rejection is all that is needed.
func (jr *JobRunner) ExpireStalePendingTransactions() {
	jr.runWithRecovery("ExpireStalePendingTransactions", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Cashback.PendingTTLHours) * time.Hour)

		stale, err := jr.store.TransactionRepository.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending transactions", "error", err)
			return
		}
		if len(stale) == 0 {
			return
		}

		expired := 0
		for i := range stale {
			tx, err := jr.store.TransactionRepository.Reject(ctx, stale[i].ID)
			if err != nil {
				// A merchant decision racing the job is fine; the row is
				// simply no longer pending.
				if errors.Is(err, repository.ErrNotPending) {
					continue
				}
				logger.Error("Failed to expire transaction", "transaction_id", stale[i].ID, "error", err)
				continue
			}
			expired++

			if err := jr.broker.Publish(ctx, realtime.StatusEvent{
				TransactionID: tx.ID,
				Status:        tx.Status,
			}); err != nil {
				logger.Error("Failed to publish expiry event", "transaction_id", tx.ID, "error", err)
			}

			jr.notifyCustomer(ctx, tx)
		}

		logger.Info("Expired stale pending transactions", "count", expired, "cutoff", cutoff)
	})
}

func (jr *JobRunner) notifyCustomer(ctx context.Context, tx *domain.CashbackTransaction) {
	note := &domain.Notification{
		UserID:  tx.CustomerID,
		Title:   "Compra expirada",
		Message: fmt.Sprintf("A compra de R$ %s não foi confirmada pela loja e foi cancelada.", money.FormatCents(tx.TotalAmountCents)),
		Attributes: map[string]string{
			"type":           "TRANSACTION_EXPIRED",
			"transaction_id": tx.ID,
		},
	}
	if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
		logger.Error("Failed to create expiry notification", "transaction_id", tx.ID, "error", err)
	}
}
