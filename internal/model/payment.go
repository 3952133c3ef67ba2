package model

import (
	"encoding/json"
	"time"
)

// Payment lifecycle states. Transitions are strictly
// Pending -> Verified -> Submitted, driven by admin actions only.
const (
	StatusPending   = "Pending"
	StatusVerified  = "Verified"
	StatusSubmitted = "Submitted"
)

// Payment is the transactional record of a single cross-border payment request
type Payment struct {
	ID           int64     `json:"id"`
	SenderID     int64     `json:"-"` // internal key; responses carry counterparty display fields instead
	ReceiverID   int64     `json:"-"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	SwiftCode    string    `json:"swiftCode"`
	PayeeAccount string    `json:"payeeAccount"` // receiver's account number as entered
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Counterparty holds the display fields populated on listings
type Counterparty struct {
	FullName      string `json:"fullName"`
	AccountNumber string `json:"accountNumber"`
}

// PaymentView is a Payment joined with sender/receiver display fields
type PaymentView struct {
	Payment
	Sender   Counterparty `json:"sender"`
	Receiver Counterparty `json:"receiver"`
}

// CreatePaymentRequest is the expected payload for POST /api/payments.
// Amount stays a json.Number until validation has checked the literal
// (positive, at most two decimal places).
type CreatePaymentRequest struct {
	ReceiverAccountNumber string      `json:"receiverAccountNumber"`
	Amount                json.Number `json:"amount"`
	Currency              string      `json:"currency"`
	SwiftCode             string      `json:"swiftCode"`
}
