package postgres

import (
	"context"
	"database/sql"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/repository"

	"github.com/google/uuid"
)

type storeRepository struct {
	db *sql.DB
}

func NewStoreRepository(db *sql.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	query := `INSERT INTO stores (id, merchant_id, name, category, cashback_percent, active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now()) RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		store.ID, store.MerchantID, store.Name, store.Category, store.CashbackPercent, store.Active,
	).Scan(&store.CreatedOn)
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	var s domain.Store
	query := `SELECT id, merchant_id, name, COALESCE(category, ''), cashback_percent, active, created_on
	          FROM stores WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.MerchantID, &s.Name, &s.Category, &s.CashbackPercent, &s.Active, &s.CreatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	query := `UPDATE stores SET name = $2, category = $3, cashback_percent = $4, active = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		store.ID, store.Name, store.Category, store.CashbackPercent, store.Active,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *storeRepository) ListByMerchant(ctx context.Context, merchantID string) ([]domain.Store, error) {
	query := `SELECT id, merchant_id, name, COALESCE(category, ''), cashback_percent, active, created_on
	          FROM stores WHERE merchant_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.MerchantID, &s.Name, &s.Category, &s.CashbackPercent, &s.Active, &s.CreatedOn); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}
