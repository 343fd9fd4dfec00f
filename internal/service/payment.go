package service

import (
	"context"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/logger"
	"localizei-backend/internal/money"
	"localizei-backend/internal/push"
	"localizei-backend/internal/repository"
)

type paymentService struct {
	txRepo        repository.TransactionRepository
	walletRepo    repository.WalletRepository
	storeRepo     repository.StoreRepository
	userRepo      repository.UserRepository
	pushSender    push.Sender
	maxUsePercent int64
}

func NewPaymentService(
	txRepo repository.TransactionRepository,
	walletRepo repository.WalletRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	pushSender push.Sender,
	maxUsePercent int64,
) PaymentService {
	return &paymentService{
		txRepo:        txRepo,
		walletRepo:    walletRepo,
		storeRepo:     storeRepo,
		userRepo:      userRepo,
		pushSender:    pushSender,
		maxUsePercent: maxUsePercent,
	}
}

func (s *paymentService) CreateTransaction(ctx context.Context, customerID, storeID string, totalCents, cashbackUsedCents int64) (*domain.CashbackTransaction, error) {
	if totalCents <= 0 || cashbackUsedCents < 0 {
		return nil, ErrInvalidAmount
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !store.Active {
		return nil, ErrStoreInactive
	}

	balance, err := s.walletRepo.GetBalance(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cashbackUsedCents > money.MaxApplicable(balance, totalCents, s.maxUsePercent) {
		return nil, ErrCashbackLimitExceeded
	}

	payNow := money.PayNow(totalCents, cashbackUsedCents)
	tx := &domain.CashbackTransaction{
		MerchantID:          store.MerchantID,
		StoreID:             store.ID,
		CustomerID:          customerID,
		TotalAmountCents:    totalCents,
		CashbackUsedCents:   cashbackUsedCents,
		CashbackToEarnCents: money.CashbackToEarn(payNow, store.CashbackPercent),
		AmountToPayNowCents: payNow,
		Status:              domain.TransactionStatusPending,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	// The merchant can still find the pending transaction by query, so a
	// failed push must not fail the creation.
	merchant, err := s.userRepo.GetByID(ctx, store.MerchantID)
	if err == nil && merchant.DeviceToken != "" {
		if err := s.pushSender.SendApprovalRequest(ctx, merchant.DeviceToken, tx); err != nil {
			logger.Warn("Failed to push approval request to merchant device",
				"transaction_id", tx.ID, "merchant_id", store.MerchantID, "error", err)
		}
	}

	return tx, nil
}

func (s *paymentService) GetTransaction(ctx context.Context, requesterID, txID string) (*domain.CashbackTransaction, error) {
	tx, err := s.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.CustomerID != requesterID && tx.MerchantID != requesterID {
		return nil, ErrUnauthorized
	}
	return tx, nil
}

func (s *paymentService) ListCustomerTransactions(ctx context.Context, customerID string, page, pageSize int32) ([]domain.CashbackTransaction, int32, error) {
	return s.txRepo.ListByCustomer(ctx, customerID, page, pageSize)
}
