package postgres

import (
	"context"
	"database/sql"
	"time"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/repository"

	"github.com/google/uuid"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, merchant_id, store_id, customer_id, total_amount_cents,
	       cashback_used_cents, cashback_to_earn_cents, amount_to_pay_now_cents,
	       status, created_on, approved_on, rejected_on`

func (r *transactionRepository) Create(ctx context.Context, tx *domain.CashbackTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.Status = domain.TransactionStatusPending
	query := `INSERT INTO cashback_transactions
	          (id, merchant_id, store_id, customer_id, total_amount_cents,
	           cashback_used_cents, cashback_to_earn_cents, amount_to_pay_now_cents, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now()) RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		tx.ID, tx.MerchantID, tx.StoreID, tx.CustomerID, tx.TotalAmountCents,
		tx.CashbackUsedCents, tx.CashbackToEarnCents, tx.AmountToPayNowCents, tx.Status,
	).Scan(&tx.CreatedOn)
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.CashbackTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM cashback_transactions WHERE id = $1`
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Approve runs the guarded status update and the wallet entry inserts in a
// single database transaction: a failed wallet write rolls the approval back
// so the row cannot end up APPROVED without the customer being credited.
func (r *transactionRepository) Approve(ctx context.Context, id string, entries []domain.WalletEntry) (*domain.CashbackTransaction, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback()

	query := `UPDATE cashback_transactions SET status = $2, approved_on = now()
	          WHERE id = $1 AND status = $3 RETURNING ` + transactionColumns
	tx, err := scanTransaction(dbTx.QueryRowContext(ctx, query,
		id, domain.TransactionStatusApproved, domain.TransactionStatusPending))
	if err == sql.ErrNoRows {
		dbTx.Rollback()
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, repository.ErrNotPending
	}
	if err != nil {
		return nil, err
	}

	insertEntry := `INSERT INTO wallet_entries (id, customer_id, amount_cents, type, related_transaction_id, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now())`
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if _, err := dbTx.ExecContext(ctx, insertEntry,
			entries[i].ID, entries[i].CustomerID, entries[i].AmountCents, entries[i].Type,
			entries[i].RelatedTransactionID, entries[i].Description,
		); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *transactionRepository) Reject(ctx context.Context, id string) (*domain.CashbackTransaction, error) {
	query := `UPDATE cashback_transactions SET status = $2, rejected_on = now()
	          WHERE id = $1 AND status = $3 RETURNING ` + transactionColumns
	return r.terminalUpdate(ctx, query, id, domain.TransactionStatusRejected)
}

// terminalUpdate applies a guarded PENDING -> terminal transition. The guard
// in the WHERE clause makes the transition atomic and exactly-once: a second
// attempt matches no row and is reported as ErrNotPending.
func (r *transactionRepository) terminalUpdate(ctx context.Context, query, id string, status domain.TransactionStatus) (*domain.CashbackTransaction, error) {
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, status, domain.TransactionStatusPending))
	if err == sql.ErrNoRows {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, repository.ErrNotPending
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *transactionRepository) ListByCustomer(ctx context.Context, customerID string, page, pageSize int32) ([]domain.CashbackTransaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + transactionColumns + ` FROM cashback_transactions
	          WHERE customer_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, customerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.CashbackTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM cashback_transactions WHERE customer_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, customerID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}

func (r *transactionRepository) ListPendingByStore(ctx context.Context, storeID string) ([]domain.CashbackTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM cashback_transactions
	          WHERE store_id = $1 AND status = $2 ORDER BY created_on`
	return r.list(ctx, query, storeID, domain.TransactionStatusPending)
}

func (r *transactionRepository) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.CashbackTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM cashback_transactions
	          WHERE status = $1 AND created_on < $2 ORDER BY created_on`
	return r.list(ctx, query, domain.TransactionStatusPending, olderThan)
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...any) ([]domain.CashbackTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.CashbackTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.CashbackTransaction, error) {
	var tx domain.CashbackTransaction
	var approvedOn, rejectedOn sql.NullTime
	err := row.Scan(
		&tx.ID, &tx.MerchantID, &tx.StoreID, &tx.CustomerID, &tx.TotalAmountCents,
		&tx.CashbackUsedCents, &tx.CashbackToEarnCents, &tx.AmountToPayNowCents,
		&tx.Status, &tx.CreatedOn, &approvedOn, &rejectedOn,
	)
	if err != nil {
		return nil, err
	}
	if approvedOn.Valid {
		tx.ApprovedOn = &approvedOn.Time
	}
	if rejectedOn.Valid {
		tx.RejectedOn = &rejectedOn.Time
	}
	return &tx, nil
}
