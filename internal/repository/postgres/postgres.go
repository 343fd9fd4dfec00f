package postgres

import (
	"database/sql"

	"localizei-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.StoreRepository
	repository.TransactionRepository
	repository.WalletRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		StoreRepository:        NewStoreRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		WalletRepository:       NewWalletRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
