package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"localizei-backend/internal/domain"
)

func activeStore() *domain.Store {
	return &domain.Store{
		ID:              "store-1",
		MerchantID:      "merchant-1",
		Name:            "Padaria do Bairro",
		CashbackPercent: 5,
		Active:          true,
	}
}

func newPaymentFixture() (*MockTransactionRepo, *MockWalletRepo, *MockStoreRepo, *MockUserRepo, *MockPushSender, PaymentService) {
	txRepo := new(MockTransactionRepo)
	walletRepo := new(MockWalletRepo)
	storeRepo := new(MockStoreRepo)
	userRepo := new(MockUserRepo)
	pushSender := new(MockPushSender)
	svc := NewPaymentService(txRepo, walletRepo, storeRepo, userRepo, pushSender, 30)
	return txRepo, walletRepo, storeRepo, userRepo, pushSender, svc
}

func TestCreateTransaction_Success(t *testing.T) {
	txRepo, walletRepo, storeRepo, userRepo, pushSender, svc := newPaymentFixture()

	storeRepo.On("GetByID", mock.Anything, "store-1").Return(activeStore(), nil)
	walletRepo.On("GetBalance", mock.Anything, "customer-1").Return(int64(1000), nil)
	txRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.CashbackTransaction")).Return(nil)
	userRepo.On("GetByID", mock.Anything, "merchant-1").Return(&domain.User{
		ID:          "merchant-1",
		Role:        domain.UserRoleMerchant,
		DeviceToken: "device-token",
	}, nil)
	pushSender.On("SendApprovalRequest", mock.Anything, "device-token", mock.Anything).Return(nil)

	tx, err := svc.CreateTransaction(context.Background(), "customer-1", "store-1", 2000, 600)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), tx.TotalAmountCents)
	assert.Equal(t, int64(600), tx.CashbackUsedCents)
	assert.Equal(t, int64(1400), tx.AmountToPayNowCents)
	assert.Equal(t, int64(70), tx.CashbackToEarnCents)
	assert.Equal(t, domain.TransactionStatusPending, tx.Status)
	assert.Equal(t, "merchant-1", tx.MerchantID)

	txRepo.AssertExpectations(t)
	pushSender.AssertExpectations(t)
}

func TestCreateTransaction_RejectsNonPositiveTotal(t *testing.T) {
	txRepo, _, _, _, _, svc := newPaymentFixture()

	_, err := svc.CreateTransaction(context.Background(), "customer-1", "store-1", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateTransaction(context.Background(), "customer-1", "store-1", 1000, -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTransaction_CashbackAboveLimit(t *testing.T) {
	txRepo, walletRepo, storeRepo, _, _, svc := newPaymentFixture()

	storeRepo.On("GetByID", mock.Anything, "store-1").Return(activeStore(), nil)
	// balance 1000, total 2000, 30% cap => limit is 600
	walletRepo.On("GetBalance", mock.Anything, "customer-1").Return(int64(1000), nil)

	_, err := svc.CreateTransaction(context.Background(), "customer-1", "store-1", 2000, 601)
	assert.ErrorIs(t, err, ErrCashbackLimitExceeded)
	txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTransaction_LimitIsBalanceWhenLower(t *testing.T) {
	txRepo, walletRepo, storeRepo, userRepo, _, svc := newPaymentFixture()

	storeRepo.On("GetByID", mock.Anything, "store-1").Return(activeStore(), nil)
	// balance 100 is below 30% of 2000, so 100 is the limit
	walletRepo.On("GetBalance", mock.Anything, "customer-1").Return(int64(100), nil)

	_, err := svc.CreateTransaction(context.Background(), "customer-1", "store-1", 2000, 101)
	assert.ErrorIs(t, err, ErrCashbackLimitExceeded)

	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetByID", mock.Anything, "merchant-1").Return(nil, assert.AnError)

	tx, err := svc.CreateTransaction(context.Background(), "customer-1", "store-1", 2000, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1900), tx.AmountToPayNowCents)
}

func TestCreateTransaction_InactiveStore(t *testing.T) {
	txRepo, _, storeRepo, _, _, svc := newPaymentFixture()

	store := activeStore()
	store.Active = false
	storeRepo.On("GetByID", mock.Anything, "store-1").Return(store, nil)

	_, err := svc.CreateTransaction(context.Background(), "customer-1", "store-1", 2000, 0)
	assert.ErrorIs(t, err, ErrStoreInactive)
	txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTransaction_PushFailureDoesNotFailCreation(t *testing.T) {
	txRepo, walletRepo, storeRepo, userRepo, pushSender, svc := newPaymentFixture()

	storeRepo.On("GetByID", mock.Anything, "store-1").Return(activeStore(), nil)
	walletRepo.On("GetBalance", mock.Anything, "customer-1").Return(int64(1000), nil)
	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetByID", mock.Anything, "merchant-1").Return(&domain.User{
		ID:          "merchant-1",
		DeviceToken: "device-token",
	}, nil)
	pushSender.On("SendApprovalRequest", mock.Anything, "device-token", mock.Anything).Return(assert.AnError)

	tx, err := svc.CreateTransaction(context.Background(), "customer-1", "store-1", 2000, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, tx.Status)
}

func TestCreateTransaction_ZeroCashbackEarnsOnFullTotal(t *testing.T) {
	txRepo, walletRepo, storeRepo, userRepo, _, svc := newPaymentFixture()

	storeRepo.On("GetByID", mock.Anything, "store-1").Return(activeStore(), nil)
	walletRepo.On("GetBalance", mock.Anything, "customer-1").Return(int64(0), nil)
	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetByID", mock.Anything, "merchant-1").Return(nil, assert.AnError)

	tx, err := svc.CreateTransaction(context.Background(), "customer-1", "store-1", 2000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), tx.AmountToPayNowCents)
	assert.Equal(t, int64(100), tx.CashbackToEarnCents)
}

func TestGetTransaction_Authorization(t *testing.T) {
	txRepo, _, _, _, _, svc := newPaymentFixture()

	tx := &domain.CashbackTransaction{
		ID:         "tx-1",
		CustomerID: "customer-1",
		MerchantID: "merchant-1",
	}
	txRepo.On("GetByID", mock.Anything, "tx-1").Return(tx, nil)

	_, err := svc.GetTransaction(context.Background(), "customer-1", "tx-1")
	assert.NoError(t, err)

	_, err = svc.GetTransaction(context.Background(), "merchant-1", "tx-1")
	assert.NoError(t, err)

	_, err = svc.GetTransaction(context.Background(), "somebody-else", "tx-1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
