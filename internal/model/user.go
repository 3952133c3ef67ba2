package model

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered account holder
type User struct {
	ID            int64     `json:"id"`
	FullName      string    `json:"fullName"`
	IDNumber      string    `json:"idNumber"`
	AccountNumber string    `json:"accountNumber"`
	PasswordHash  string    `json:"-"` // Do not expose password hash in JSON responses
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterRequest is the expected payload for POST /api/auth/register
type RegisterRequest struct {
	FullName      string `json:"fullName"`
	IDNumber      string `json:"idNumber"`
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

// LoginRequest is the expected payload for POST /api/auth/login
type LoginRequest struct {
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

// Profile is the non-secret subset of a User echoed in auth responses.
// The session token itself travels only in the cookie, never in the body.
type Profile struct {
	ID            int64  `json:"id"`
	FullName      string `json:"fullName"`
	IDNumber      string `json:"idNumber"`
	AccountNumber string `json:"accountNumber"`
	Role          string `json:"role"`
}

// ToProfile strips the fields that must never leave the credential store
func (u *User) ToProfile() Profile {
	return Profile{
		ID:            u.ID,
		FullName:      u.FullName,
		IDNumber:      u.IDNumber,
		AccountNumber: u.AccountNumber,
		Role:          u.Role,
	}
}
