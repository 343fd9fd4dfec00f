package postgres

import (
	"context"
	"database/sql"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/repository"

	"github.com/google/uuid"
)

type walletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) repository.WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetBalance(ctx context.Context, customerID string) (int64, error) {
	var balance int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM wallet_entries WHERE customer_id = $1`
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&balance)
	return balance, err
}

func (r *walletRepository) CreateEntry(ctx context.Context, entry *domain.WalletEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	query := `INSERT INTO wallet_entries (id, customer_id, amount_cents, type, related_transaction_id, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now()) RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		entry.ID, entry.CustomerID, entry.AmountCents, entry.Type, entry.RelatedTransactionID, entry.Description,
	).Scan(&entry.CreatedOn)
}

func (r *walletRepository) ListEntries(ctx context.Context, customerID string, page, pageSize int32) ([]domain.WalletEntry, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, customer_id, amount_cents, type, related_transaction_id, COALESCE(description, ''), created_on
	          FROM wallet_entries WHERE customer_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, customerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.WalletEntry
	for rows.Next() {
		var e domain.WalletEntry
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.AmountCents, &e.Type, &e.RelatedTransactionID, &e.Description, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM wallet_entries WHERE customer_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}
