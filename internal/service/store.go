package service

import (
	"context"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/repository"
)

type storeService struct {
	storeRepo repository.StoreRepository
}

func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

func (s *storeService) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	return s.storeRepo.GetByID(ctx, id)
}

func (s *storeService) CreateStore(ctx context.Context, merchantID string, store *domain.Store) error {
	store.MerchantID = merchantID
	return s.storeRepo.Create(ctx, store)
}

func (s *storeService) UpdateStore(ctx context.Context, merchantID string, store *domain.Store) error {
	existing, err := s.storeRepo.GetByID(ctx, store.ID)
	if err != nil {
		return err
	}
	if existing.MerchantID != merchantID {
		return ErrUnauthorized
	}
	store.MerchantID = existing.MerchantID
	return s.storeRepo.Update(ctx, store)
}

func (s *storeService) ListMerchantStores(ctx context.Context, merchantID string) ([]domain.Store, error) {
	return s.storeRepo.ListByMerchant(ctx, merchantID)
}
