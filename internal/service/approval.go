package service

import (
	"context"
	"fmt"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/logger"
	"localizei-backend/internal/money"
	"localizei-backend/internal/realtime"
	"localizei-backend/internal/repository"
)

type approvalService struct {
	txRepo    repository.TransactionRepository
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
	noteRepo  repository.NotificationRepository
	emailSvc  EmailService
	broker    realtime.Broker
}

func NewApprovalService(
	txRepo repository.TransactionRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	broker realtime.Broker,
) ApprovalService {
	return &approvalService{
		txRepo:    txRepo,
		storeRepo: storeRepo,
		userRepo:  userRepo,
		noteRepo:  noteRepo,
		emailSvc:  emailSvc,
		broker:    broker,
	}
}

func (s *approvalService) Approve(ctx context.Context, merchantID, txID string) (*domain.CashbackTransaction, error) {
	tx, err := s.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.MerchantID != merchantID {
		return nil, ErrUnauthorized
	}

	// The PENDING guard makes the terminal transition exactly-once, and the
	// wallet movement commits in the same database transaction as the
	// status: the row and the customer's balance can never disagree.
	var entries []domain.WalletEntry
	if tx.CashbackUsedCents > 0 {
		entries = append(entries, domain.WalletEntry{
			CustomerID:           tx.CustomerID,
			AmountCents:          -tx.CashbackUsedCents,
			Type:                 domain.WalletEntryCashbackSpent,
			RelatedTransactionID: &tx.ID,
			Description:          fmt.Sprintf("Cashback applied to purchase at store %s", tx.StoreID),
		})
	}
	if tx.CashbackToEarnCents > 0 {
		entries = append(entries, domain.WalletEntry{
			CustomerID:           tx.CustomerID,
			AmountCents:          tx.CashbackToEarnCents,
			Type:                 domain.WalletEntryCashbackEarned,
			RelatedTransactionID: &tx.ID,
			Description:          fmt.Sprintf("Cashback earned on purchase at store %s", tx.StoreID),
		})
	}
	tx, err = s.txRepo.Approve(ctx, txID, entries)
	if err != nil {
		return nil, err
	}

	s.notifyCustomer(ctx, tx, "Compra aprovada",
		fmt.Sprintf("Your purchase of R$ %s was approved. Cashback earned: R$ %s",
			money.FormatCents(tx.TotalAmountCents), money.FormatCents(tx.CashbackToEarnCents)),
		"CASHBACK_APPROVED")

	customer, err := s.userRepo.GetByID(ctx, tx.CustomerID)
	if err == nil {
		_ = s.emailSvc.SendApprovalReceipt(ctx, customer.Email, tx)
	}

	s.publishStatus(ctx, tx)
	return tx, nil
}

func (s *approvalService) Reject(ctx context.Context, merchantID, txID string) (*domain.CashbackTransaction, error) {
	tx, err := s.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.MerchantID != merchantID {
		return nil, ErrUnauthorized
	}

	tx, err = s.txRepo.Reject(ctx, txID)
	if err != nil {
		return nil, err
	}

	// Rejection is a business outcome, not an error: no wallet movement
	// has happened, the customer's balance is untouched.
	s.notifyCustomer(ctx, tx, "Compra recusada",
		fmt.Sprintf("Your purchase of R$ %s was rejected by the store",
			money.FormatCents(tx.TotalAmountCents)),
		"CASHBACK_REJECTED")

	customer, err := s.userRepo.GetByID(ctx, tx.CustomerID)
	if err == nil {
		_ = s.emailSvc.SendRejectionNotice(ctx, customer.Email, tx)
	}

	s.publishStatus(ctx, tx)
	return tx, nil
}

func (s *approvalService) ListStorePending(ctx context.Context, merchantID, storeID string) ([]domain.CashbackTransaction, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.MerchantID != merchantID {
		return nil, ErrUnauthorized
	}
	return s.txRepo.ListPendingByStore(ctx, storeID)
}

func (s *approvalService) notifyCustomer(ctx context.Context, tx *domain.CashbackTransaction, title, message, noteType string) {
	note := &domain.Notification{
		UserID:  tx.CustomerID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":           noteType,
			"transaction_id": tx.ID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create customer notification", "transaction_id", tx.ID, "error", err)
	}
}

func (s *approvalService) publishStatus(ctx context.Context, tx *domain.CashbackTransaction) {
	event := realtime.StatusEvent{TransactionID: tx.ID, Status: tx.Status}
	if err := s.broker.Publish(ctx, event); err != nil {
		// Watchers will not see this update in realtime; the row itself is
		// already terminal, so a later read still converges.
		logger.Error("Failed to publish status event", "transaction_id", tx.ID, "status", tx.Status, "error", err)
	}
}
