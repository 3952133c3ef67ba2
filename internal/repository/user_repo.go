package repository

import (
	"context"
	"errors"
	"fmt"

	"payment_portal/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user identity records
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByAccountNumber(ctx context.Context, accountNumber string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (full_name, id_number, account_number, password_hash, role, created_at)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.FullName, user.IDNumber, user.AccountNumber, user.PasswordHash, user.Role, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByAccountNumber retrieves a user by account number (case-sensitive
// exact match). A missing user is returned as nil without an error; the
// service layer decides what that means.
func (r *userRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, full_name, id_number, account_number, password_hash, role, created_at
            FROM users WHERE account_number = $1`
	err := r.db.QueryRow(ctx, sql, accountNumber).Scan(
		&user.ID, &user.FullName, &user.IDNumber, &user.AccountNumber,
		&user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by account number: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, full_name, id_number, account_number, password_hash, role, created_at
            FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&user.ID, &user.FullName, &user.IDNumber, &user.AccountNumber,
		&user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}
