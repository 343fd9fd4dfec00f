package session

import (
	"context"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/realtime"
	"localizei-backend/internal/service"
)

// ServiceLedger adapts the in-process services and broker to the Ledger
// port, for deployments where the payment screen runs against this backend
// directly.
type ServiceLedger struct {
	Payments service.PaymentService
	Wallets  service.WalletService
	Stores   service.StoreService
	Broker   realtime.Broker
}

func (l *ServiceLedger) CreateTransaction(ctx context.Context, customerID, storeID string, totalCents, cashbackUsedCents int64) (*domain.CashbackTransaction, error) {
	return l.Payments.CreateTransaction(ctx, customerID, storeID, totalCents, cashbackUsedCents)
}

func (l *ServiceLedger) StoreInfo(ctx context.Context, storeID string) (*domain.Store, error) {
	return l.Stores.GetStore(ctx, storeID)
}

func (l *ServiceLedger) Balance(ctx context.Context, customerID string) (int64, error) {
	return l.Wallets.GetBalance(ctx, customerID)
}

func (l *ServiceLedger) Watch(ctx context.Context, transactionID string) (realtime.Subscription, error) {
	return l.Broker.Subscribe(ctx, transactionID)
}
