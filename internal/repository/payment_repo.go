package repository

import (
	"context"
	"errors"
	"fmt"

	"payment_portal/internal/model"

	"github.com/jackc/pgx/v5"
)

// PaymentRepository defines operations for payment ledger entries
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, id int64) (*model.Payment, error)
	FindByParticipant(ctx context.Context, userID int64) ([]model.PaymentView, error)
	FindAll(ctx context.Context) ([]model.PaymentView, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type paymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentViewSelect = `SELECT p.id, p.sender_id, p.receiver_id, p.amount, p.currency, p.swift_code, p.payee_account, p.status, p.created_at,
            s.full_name, s.account_number, r.full_name, r.account_number
            FROM payments p
            JOIN users s ON p.sender_id = s.id
            JOIN users r ON p.receiver_id = r.id`

// Create inserts a new payment ledger entry
func (r *paymentRepository) Create(ctx context.Context, p *model.Payment) error {
	sql := `INSERT INTO payments (sender_id, receiver_id, amount, currency, swift_code, payee_account, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, p.SenderID, p.ReceiverID, p.Amount, p.Currency, p.SwiftCode, p.PayeeAccount, p.Status, p.CreatedAt).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// FindByID retrieves a payment by its ID; missing payments come back nil
func (r *paymentRepository) FindByID(ctx context.Context, id int64) (*model.Payment, error) {
	p := &model.Payment{}
	sql := `SELECT id, sender_id, receiver_id, amount, currency, swift_code, payee_account, status, created_at
            FROM payments WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&p.ID, &p.SenderID, &p.ReceiverID, &p.Amount, &p.Currency,
		&p.SwiftCode, &p.PayeeAccount, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find payment by ID: %w", err)
	}
	return p, nil
}

// FindByParticipant retrieves payments where the user is sender or
// receiver, newest first, with counterpart display fields populated.
func (r *paymentRepository) FindByParticipant(ctx context.Context, userID int64) ([]model.PaymentView, error) {
	sql := paymentViewSelect + `
            WHERE p.sender_id = $1 OR p.receiver_id = $1
            ORDER BY p.created_at DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments by participant: %w", err)
	}
	defer rows.Close()

	return scanPaymentViews(rows)
}

// FindAll retrieves every payment, newest first, fully populated
func (r *paymentRepository) FindAll(ctx context.Context) ([]model.PaymentView, error) {
	sql := paymentViewSelect + ` ORDER BY p.created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query all payments: %w", err)
	}
	defer rows.Close()

	return scanPaymentViews(rows)
}

// UpdateStatus advances a payment's status. A single scalar write; the
// store's per-row atomicity is the only arbitration needed.
func (r *paymentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	sql := `UPDATE payments SET status = $1 WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, status, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment not found for status update")
	}
	return nil
}

func scanPaymentViews(rows pgx.Rows) ([]model.PaymentView, error) {
	var payments []model.PaymentView
	for rows.Next() {
		var v model.PaymentView
		if err := rows.Scan(
			&v.ID, &v.SenderID, &v.ReceiverID, &v.Amount, &v.Currency,
			&v.SwiftCode, &v.PayeeAccount, &v.Status, &v.CreatedAt,
			&v.Sender.FullName, &v.Sender.AccountNumber,
			&v.Receiver.FullName, &v.Receiver.AccountNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}
