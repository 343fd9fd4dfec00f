package postgres

import (
	"context"
	"database/sql"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `INSERT INTO users (id, name, email, phone_number, password_hash, role, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now()) RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PhoneNumber, user.PasswordHash, user.Role,
	).Scan(&user.CreatedOn)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, name, email, COALESCE(phone_number, ''), password_hash, role, COALESCE(device_token, ''), created_on
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, COALESCE(phone_number, ''), password_hash, role, COALESCE(device_token, ''), created_on
	          FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) SaveDeviceToken(ctx context.Context, userID, deviceToken string) error {
	query := `UPDATE users SET device_token = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, deviceToken)
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

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Role, &u.DeviceToken, &u.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
