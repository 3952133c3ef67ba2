package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"payment_portal/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	user := &model.User{
		FullName:      "Alice Customer",
		IDNumber:      "8001015009087",
		AccountNumber: "10000001",
		PasswordHash:  "$2a$12$hash",
		Role:          model.RoleCustomer,
		CreatedAt:     time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.FullName, user.IDNumber, user.AccountNumber, user.PasswordHash, user.Role, user.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	err = repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByAccountNumber(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	created := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE account_number = $1")).
		WithArgs("10000001").
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "id_number", "account_number", "password_hash", "role", "created_at"}).
			AddRow(int64(1), "Alice Customer", "8001015009087", "10000001", "$2a$12$hash", model.RoleCustomer, created))

	user, err := repo.FindByAccountNumber(context.Background(), "10000001")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Alice Customer", user.FullName)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByAccountNumber_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE account_number = $1")).
		WithArgs("99999999").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByAccountNumber(context.Background(), "99999999")

	// absence is not an error at this layer
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}
