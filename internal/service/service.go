package service

import (
	"context"
	"errors"

	"localizei-backend/internal/domain"
)

var (
	ErrInvalidAmount = errors.New("purchase total must be greater than zero")
	// ErrCashbackLimitExceeded is returned when the requested deduction is
	// above min(balance, max_use_percent * total).
	ErrCashbackLimitExceeded = errors.New("cashback amount exceeds the applicable limit")
	ErrStoreInactive         = errors.New("store is not accepting cashback payments")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailTaken            = errors.New("email is already registered")
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	RegisterDevice(ctx context.Context, userID, deviceToken string) error
}

type PaymentService interface {
	// CreateTransaction validates the amounts against the business limits
	// and writes a single PENDING transaction row. Validation failures are
	// local: nothing is written and the caller may resubmit.
	CreateTransaction(ctx context.Context, customerID, storeID string, totalCents, cashbackUsedCents int64) (*domain.CashbackTransaction, error)
	GetTransaction(ctx context.Context, requesterID, txID string) (*domain.CashbackTransaction, error)
	ListCustomerTransactions(ctx context.Context, customerID string, page, pageSize int32) ([]domain.CashbackTransaction, int32, error)
}

type ApprovalService interface {
	Approve(ctx context.Context, merchantID, txID string) (*domain.CashbackTransaction, error)
	Reject(ctx context.Context, merchantID, txID string) (*domain.CashbackTransaction, error)
	ListStorePending(ctx context.Context, merchantID, storeID string) ([]domain.CashbackTransaction, error)
}

type WalletService interface {
	GetBalance(ctx context.Context, customerID string) (int64, error)
	GetStatement(ctx context.Context, customerID string, page, pageSize int32) ([]domain.WalletEntry, int32, error)
}

type StoreService interface {
	GetStore(ctx context.Context, id string) (*domain.Store, error)
	CreateStore(ctx context.Context, merchantID string, store *domain.Store) error
	UpdateStore(ctx context.Context, merchantID string, store *domain.Store) error
	ListMerchantStores(ctx context.Context, merchantID string) ([]domain.Store, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type EmailService interface {
	SendApprovalReceipt(ctx context.Context, email string, tx *domain.CashbackTransaction) error
	SendRejectionNotice(ctx context.Context, email string, tx *domain.CashbackTransaction) error
}
