package service

import (
	"context"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/repository"
)

type walletService struct {
	walletRepo repository.WalletRepository
}

func NewWalletService(walletRepo repository.WalletRepository) WalletService {
	return &walletService{walletRepo: walletRepo}
}

func (s *walletService) GetBalance(ctx context.Context, customerID string) (int64, error) {
	return s.walletRepo.GetBalance(ctx, customerID)
}

func (s *walletService) GetStatement(ctx context.Context, customerID string, page, pageSize int32) ([]domain.WalletEntry, int32, error) {
	return s.walletRepo.ListEntries(ctx, customerID, page, pageSize)
}
