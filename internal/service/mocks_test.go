package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/realtime"
)

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.CashbackTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByID(ctx context.Context, id string) (*domain.CashbackTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbackTransaction), args.Error(1)
}
func (m *MockTransactionRepo) Approve(ctx context.Context, id string, entries []domain.WalletEntry) (*domain.CashbackTransaction, error) {
	args := m.Called(ctx, id, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbackTransaction), args.Error(1)
}
func (m *MockTransactionRepo) Reject(ctx context.Context, id string) (*domain.CashbackTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbackTransaction), args.Error(1)
}
func (m *MockTransactionRepo) ListByCustomer(ctx context.Context, customerID string, page, pageSize int32) ([]domain.CashbackTransaction, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.CashbackTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockTransactionRepo) ListPendingByStore(ctx context.Context, storeID string) ([]domain.CashbackTransaction, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]domain.CashbackTransaction), args.Error(1)
}
func (m *MockTransactionRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.CashbackTransaction, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.CashbackTransaction), args.Error(1)
}

// MockWalletRepo
type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) GetBalance(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockWalletRepo) CreateEntry(ctx context.Context, entry *domain.WalletEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockWalletRepo) ListEntries(ctx context.Context, customerID string, page, pageSize int32) ([]domain.WalletEntry, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.WalletEntry), args.Get(1).(int32), args.Error(2)
}

// MockStoreRepo
type MockStoreRepo struct {
	mock.Mock
}

func (m *MockStoreRepo) Create(ctx context.Context, store *domain.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}
func (m *MockStoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}
func (m *MockStoreRepo) Update(ctx context.Context, store *domain.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}
func (m *MockStoreRepo) ListByMerchant(ctx context.Context, merchantID string) ([]domain.Store, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).([]domain.Store), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) SaveDeviceToken(ctx context.Context, userID, deviceToken string) error {
	args := m.Called(ctx, userID, deviceToken)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockPushSender
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) SendApprovalRequest(ctx context.Context, deviceToken string, tx *domain.CashbackTransaction) error {
	args := m.Called(ctx, deviceToken, tx)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendApprovalReceipt(ctx context.Context, email string, tx *domain.CashbackTransaction) error {
	args := m.Called(ctx, email, tx)
	return args.Error(0)
}
func (m *MockEmailService) SendRejectionNotice(ctx context.Context, email string, tx *domain.CashbackTransaction) error {
	args := m.Called(ctx, email, tx)
	return args.Error(0)
}

// MockBroker
type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Subscribe(ctx context.Context, transactionID string) (realtime.Subscription, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(realtime.Subscription), args.Error(1)
}
func (m *MockBroker) Publish(ctx context.Context, event realtime.StatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
