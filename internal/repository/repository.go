package repository

import (
	"context"
	"errors"
	"time"

	"localizei-backend/internal/domain"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrNotPending is returned when a terminal transition is attempted on
	// a transaction that already left the PENDING state.
	ErrNotPending = errors.New("transaction is not pending")
)

type TransactionRepository interface {
	// Create inserts a new PENDING transaction atomically and assigns its
	// id. On error nothing is written.
	Create(ctx context.Context, tx *domain.CashbackTransaction) error
	GetByID(ctx context.Context, id string) (*domain.CashbackTransaction, error)
	// Approve flips the status with a PENDING guard and writes the wallet
	// entries settling the transaction in the same database transaction, so
	// the terminal status and the wallet movement commit or fail together.
	// Reject flips the status alone; a rejection moves no money. Both
	// happen exactly once and return ErrNotPending when the row has
	// already reached a terminal status.
	Approve(ctx context.Context, id string, entries []domain.WalletEntry) (*domain.CashbackTransaction, error)
	Reject(ctx context.Context, id string) (*domain.CashbackTransaction, error)
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int32) ([]domain.CashbackTransaction, int32, error)
	ListPendingByStore(ctx context.Context, storeID string) ([]domain.CashbackTransaction, error)
	ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.CashbackTransaction, error)
}

type WalletRepository interface {
	GetBalance(ctx context.Context, customerID string) (int64, error)
	CreateEntry(ctx context.Context, entry *domain.WalletEntry) error
	ListEntries(ctx context.Context, customerID string, page, pageSize int32) ([]domain.WalletEntry, int32, error)
}

type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	Update(ctx context.Context, store *domain.Store) error
	ListByMerchant(ctx context.Context, merchantID string) ([]domain.Store, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SaveDeviceToken(ctx context.Context, userID, deviceToken string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
