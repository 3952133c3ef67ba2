package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payment_portal/internal/model"
	"payment_portal/internal/repository"
)

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrReceiverNotFound = errors.New("receiver account not found")
	ErrSelfPayment      = errors.New("cannot send funds to your own account")
	// ErrInvalidTransition rejects re-verifying or re-submitting; the
	// lifecycle is strictly Pending -> Verified -> Submitted.
	ErrInvalidTransition = errors.New("invalid payment status transition")
)

// PaymentService defines the payment lifecycle operations
type PaymentService interface {
	Create(ctx context.Context, senderID int64, req model.CreatePaymentRequest) (*model.Payment, error)
	ListForUser(ctx context.Context, userID int64) ([]model.PaymentView, error)
	ListAll(ctx context.Context) ([]model.PaymentView, error)
	Verify(ctx context.Context, paymentID int64) (*model.Payment, error)
	Submit(ctx context.Context, paymentID int64) (*model.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo repository.PaymentRepository, userRepo repository.UserRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, userRepo: userRepo}
}

// Create records a new payment request in status Pending
func (s *paymentService) Create(ctx context.Context, senderID int64, req model.CreatePaymentRequest) (*model.Payment, error) {
	receiver, err := s.userRepo.FindByAccountNumber(ctx, req.ReceiverAccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve receiver: %w", err)
	}
	if receiver == nil {
		return nil, ErrReceiverNotFound
	}
	if receiver.ID == senderID {
		return nil, ErrSelfPayment
	}

	amount, err := req.Amount.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", req.Amount.String(), err)
	}

	payment := &model.Payment{
		SenderID:     senderID,
		ReceiverID:   receiver.ID,
		Amount:       amount,
		Currency:     req.Currency,
		SwiftCode:    req.SwiftCode,
		PayeeAccount: req.ReceiverAccountNumber,
		Status:       model.StatusPending,
		CreatedAt:    time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment in repo: %w", err)
	}
	return payment, nil
}

// ListForUser returns payments where the user is sender or receiver
func (s *paymentService) ListForUser(ctx context.Context, userID int64) ([]model.PaymentView, error) {
	payments, err := s.paymentRepo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user payments: %w", err)
	}
	return payments, nil
}

// ListAll returns every payment, for admins
func (s *paymentService) ListAll(ctx context.Context) ([]model.PaymentView, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all payments: %w", err)
	}
	return payments, nil
}

// Verify advances a Pending payment to Verified
func (s *paymentService) Verify(ctx context.Context, paymentID int64) (*model.Payment, error) {
	return s.advance(ctx, paymentID, model.StatusPending, model.StatusVerified)
}

// Submit advances a Verified payment to Submitted (simulated SWIFT handoff)
func (s *paymentService) Submit(ctx context.Context, paymentID int64) (*model.Payment, error) {
	return s.advance(ctx, paymentID, model.StatusVerified, model.StatusSubmitted)
}

func (s *paymentService) advance(ctx context.Context, paymentID int64, from, to string) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != from {
		return nil, fmt.Errorf("%w: payment %d is %s, expected %s", ErrInvalidTransition, paymentID, payment.Status, from)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, paymentID, to); err != nil {
		return nil, fmt.Errorf("failed to advance payment status: %w", err)
	}

	payment.Status = to
	return payment, nil
}
