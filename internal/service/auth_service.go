package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"payment_portal/internal/config"
	"payment_portal/internal/model"
	"payment_portal/internal/repository"
	"payment_portal/internal/utils"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidCredentials covers both an unknown account number and a
	// wrong password so callers can never distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService provides registration and login
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, accountNumber, password string) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	cfg      *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		cfg:      cfg,
	}
}

// Register creates a new user account and mints its first session token
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	existingUser, err := s.userRepo.FindByAccountNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrAccountExists
	}

	hashedPassword, err := utils.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	userRole := model.RoleCustomer
	if s.cfg.InitialAdminAccount != "" && req.AccountNumber == s.cfg.InitialAdminAccount {
		userRole = model.RoleAdmin
		log.Printf("INFO: Account %s is being registered as ADMIN via INITIAL_ADMIN_ACCOUNT.", req.AccountNumber)
	}

	user := &model.User{
		FullName:      req.FullName,
		IDNumber:      req.IDNumber,
		AccountNumber: req.AccountNumber,
		PasswordHash:  hashedPassword,
		Role:          userRole,
		CreatedAt:     time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// two concurrent registrations can both pass the lookup above;
		// the unique index on account_number arbitrates
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, "", ErrAccountExists
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and mints a session token
func (s *authService) Login(ctx context.Context, accountNumber, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by account number: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
