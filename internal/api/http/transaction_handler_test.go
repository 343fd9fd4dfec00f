package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/realtime"
	"localizei-backend/internal/repository"
	"localizei-backend/internal/security"
	"localizei-backend/internal/service"
)

const handlerTestSecret = "test-secret-key-that-is-long-enough!"

type routerFixture struct {
	router      http.Handler
	payments    *MockPaymentService
	approvals   *MockApprovalService
	wallets     *MockWalletService
	stores      *MockStoreService
	tokenManger security.TokenManager
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		payments:    new(MockPaymentService),
		approvals:   new(MockApprovalService),
		wallets:     new(MockWalletService),
		stores:      new(MockStoreService),
		tokenManger: security.NewTokenManager(handlerTestSecret, 0, 0),
	}
	f.router = NewRouter(RouterDeps{
		TokenManager: f.tokenManger,
		AuthSvc:      new(MockAuthService),
		PaymentSvc:   f.payments,
		ApprovalSvc:  f.approvals,
		WalletSvc:    f.wallets,
		StoreSvc:     f.stores,
		NoteSvc:      new(MockNotificationService),
		Broker:       realtime.NewMemoryBroker(),
	})
	return f
}

func (f *routerFixture) tokenFor(t *testing.T, userID string, role domain.UserRole) string {
	t.Helper()
	token, err := f.tokenManger.GenerateAccessToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func sampleTx() *domain.CashbackTransaction {
	return &domain.CashbackTransaction{
		ID:                  "tx-1",
		MerchantID:          "merchant-1",
		StoreID:             "store-1",
		CustomerID:          "customer-1",
		TotalAmountCents:    2000,
		CashbackUsedCents:   600,
		CashbackToEarnCents: 70,
		AmountToPayNowCents: 1400,
		Status:              domain.TransactionStatusPending,
	}
}

func TestCreateTransactionEndpoint_ParsesLocaleAmounts(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, "customer-1", domain.UserRoleCustomer)

	f.payments.On("CreateTransaction", mock.Anything, "customer-1", "store-1", int64(2000), int64(600)).
		Return(sampleTx(), nil)

	rec := f.do(t, "POST", "/api/v1/transactions", token, map[string]string{
		"store_id":        "store-1",
		"total_amount":    "20,00",
		"cashback_amount": "6,00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tx-1", resp.ID)
	assert.Equal(t, int64(1400), resp.PayNowCents)
	assert.Equal(t, "14,00", resp.PayNow)
	assert.Equal(t, "PENDING", resp.Status)
}

func TestCreateTransactionEndpoint_RejectsMalformedAmount(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, "customer-1", domain.UserRoleCustomer)

	rec := f.do(t, "POST", "/api/v1/transactions", token, map[string]string{
		"store_id":        "store-1",
		"total_amount":    "12,3,4",
		"cashback_amount": "0",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.payments.AssertNotCalled(t, "CreateTransaction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTransactionEndpoint_LimitExceeded(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, "customer-1", domain.UserRoleCustomer)

	f.payments.On("CreateTransaction", mock.Anything, "customer-1", "store-1", int64(2000), int64(700)).
		Return(nil, service.ErrCashbackLimitExceeded)

	rec := f.do(t, "POST", "/api/v1/transactions", token, map[string]string{
		"store_id":        "store-1",
		"total_amount":    "20,00",
		"cashback_amount": "7,00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateTransactionEndpoint_RequiresCustomerRole(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, "merchant-1", domain.UserRoleMerchant)

	rec := f.do(t, "POST", "/api/v1/transactions", token, map[string]string{
		"store_id":     "store-1",
		"total_amount": "20,00",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTransactionEndpoints_RequireAuth(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, "GET", "/api/v1/transactions/tx-1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, "GET", "/api/v1/transactions/tx-1", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApproveEndpoint(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, "merchant-1", domain.UserRoleMerchant)

	approved := sampleTx()
	approved.Status = domain.TransactionStatusApproved
	f.approvals.On("Approve", mock.Anything, "merchant-1", "tx-1").Return(approved, nil)

	rec := f.do(t, "POST", "/api/v1/transactions/tx-1/approve", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "APPROVED", resp.Status)
}

func TestApproveEndpoint_AlreadyDecided(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, "merchant-1", domain.UserRoleMerchant)

	f.approvals.On("Approve", mock.Anything, "merchant-1", "tx-1").
		Return(nil, repository.ErrNotPending)

	rec := f.do(t, "POST", "/api/v1/transactions/tx-1/approve", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRejectEndpoint_RequiresMerchantRole(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, "customer-1", domain.UserRoleCustomer)

	rec := f.do(t, "POST", "/api/v1/transactions/tx-1/reject", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	f.approvals.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything, mock.Anything)
}

func TestBalanceEndpoint(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, "customer-1", domain.UserRoleCustomer)

	f.wallets.On("GetBalance", mock.Anything, "customer-1").Return(int64(123456), nil)

	rec := f.do(t, "GET", "/api/v1/wallet/balance", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp balanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(123456), resp.BalanceCents)
	assert.Equal(t, "1.234,56", resp.Balance)
}

func TestGetStoreEndpoint(t *testing.T) {
	f := newRouterFixture(t)
	token := f.tokenFor(t, "customer-1", domain.UserRoleCustomer)

	f.stores.On("GetStore", mock.Anything, "store-1").Return(&domain.Store{
		ID:              "store-1",
		MerchantID:      "merchant-1",
		Name:            "Padaria do Bairro",
		CashbackPercent: 5,
		Active:          true,
	}, nil)

	rec := f.do(t, "GET", "/api/v1/stores/store-1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp storeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.CashbackPercent)
	assert.True(t, resp.Active)
}
