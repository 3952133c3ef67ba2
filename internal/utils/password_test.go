package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// The minimum cost keeps these tests fast; the production cost only
// changes how expensive the derivation is, not its behavior.

func TestHashPassword(t *testing.T) {
	password := "Secur3P@ssw0rd"
	hashedPassword, err := HashPassword(password, bcrypt.MinCost)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hashedPassword, err := HashPassword("Secur3P@ssw0rd", 0)

	assert.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashedPassword))
	assert.NoError(t, err)
	assert.Equal(t, DefaultHashCost, cost)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "Secur3P@ssw0rd"
	hashedPassword, _ := HashPassword(password, bcrypt.MinCost)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("Secur3P@ssw0rd", "invalidhash"))
}
