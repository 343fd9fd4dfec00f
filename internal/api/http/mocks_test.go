package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"localizei-backend/internal/domain"
)

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateTransaction(ctx context.Context, customerID, storeID string, totalCents, cashbackUsedCents int64) (*domain.CashbackTransaction, error) {
	args := m.Called(ctx, customerID, storeID, totalCents, cashbackUsedCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbackTransaction), args.Error(1)
}
func (m *MockPaymentService) GetTransaction(ctx context.Context, requesterID, txID string) (*domain.CashbackTransaction, error) {
	args := m.Called(ctx, requesterID, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbackTransaction), args.Error(1)
}
func (m *MockPaymentService) ListCustomerTransactions(ctx context.Context, customerID string, page, pageSize int32) ([]domain.CashbackTransaction, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.CashbackTransaction), args.Get(1).(int32), args.Error(2)
}

// MockApprovalService
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) Approve(ctx context.Context, merchantID, txID string) (*domain.CashbackTransaction, error) {
	args := m.Called(ctx, merchantID, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbackTransaction), args.Error(1)
}
func (m *MockApprovalService) Reject(ctx context.Context, merchantID, txID string) (*domain.CashbackTransaction, error) {
	args := m.Called(ctx, merchantID, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashbackTransaction), args.Error(1)
}
func (m *MockApprovalService) ListStorePending(ctx context.Context, merchantID, storeID string) ([]domain.CashbackTransaction, error) {
	args := m.Called(ctx, merchantID, storeID)
	return args.Get(0).([]domain.CashbackTransaction), args.Error(1)
}

// MockWalletService
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetBalance(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockWalletService) GetStatement(ctx context.Context, customerID string, page, pageSize int32) ([]domain.WalletEntry, int32, error) {
	args := m.Called(ctx, customerID, page, pageSize)
	return args.Get(0).([]domain.WalletEntry), args.Get(1).(int32), args.Error(2)
}

// MockStoreService
type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}
func (m *MockStoreService) CreateStore(ctx context.Context, merchantID string, store *domain.Store) error {
	args := m.Called(ctx, merchantID, store)
	return args.Error(0)
}
func (m *MockStoreService) UpdateStore(ctx context.Context, merchantID string, store *domain.Store) error {
	args := m.Called(ctx, merchantID, store)
	return args.Error(0)
}
func (m *MockStoreService) ListMerchantStores(ctx context.Context, merchantID string) ([]domain.Store, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).([]domain.Store), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, string, error) {
	args := m.Called(ctx, name, email, phone, password, role)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.String(2), args.Error(3)
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.String(2), args.Error(3)
}
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockAuthService) RegisterDevice(ctx context.Context, userID, deviceToken string) error {
	args := m.Called(ctx, userID, deviceToken)
	return args.Error(0)
}
