// Package validate gates every endpoint payload behind an ordered list of
// field rules. Checks short-circuit per field but accumulate across
// fields, so a failing request reports every violated field at once.
package validate

import (
	"encoding/json"
	"regexp"
	"strconv"
	"unicode/utf8"

	"payment_portal/internal/model"
	"payment_portal/internal/sanitize"
)

// Whitelist patterns
var (
	fullNameRe      = regexp.MustCompile(`^[\p{L} .'\-]{2,100}$`)
	idNumberRe      = regexp.MustCompile(`^\d{13}$`)
	accountNumberRe = regexp.MustCompile(`^[A-Za-z0-9_\-]{5,30}$`)
	currencyRe      = regexp.MustCompile(`^[A-Z]{3}$`)
	swiftRe         = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	amountRe        = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// FieldError describes a single violated field rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rule is one entry in an endpoint's ordered rule list
type Rule struct {
	Field    string
	Value    string
	Optional bool
	MinLen   int
	Pattern  *regexp.Regexp
	Message  string
}

// Apply runs the rules in order. Every string value passes through
// sanitize.CleanString immediately before matching, so a validated field
// cannot carry residual markup even if the body sanitizer was bypassed.
func Apply(rules []Rule) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		value := sanitize.CleanString(r.Value)
		if value == "" {
			if r.Optional {
				continue
			}
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
			continue
		}
		// MinLen counts characters, not bytes
		if r.MinLen > 0 && utf8.RuneCountInString(value) < r.MinLen {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
			continue
		}
		if r.Pattern != nil && !r.Pattern.MatchString(value) {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
		}
	}
	return errs
}

// Register validates a registration payload
func Register(req model.RegisterRequest) []FieldError {
	return Apply([]Rule{
		{Field: "fullName", Value: req.FullName, Pattern: fullNameRe, Message: "Full name is required and must be valid."},
		{Field: "idNumber", Value: req.IDNumber, Pattern: idNumberRe, Message: "ID number must be a valid 13-digit number."},
		{Field: "accountNumber", Value: req.AccountNumber, Pattern: accountNumberRe, Message: "Invalid account number format."},
		{Field: "password", Value: req.Password, MinLen: 8, Message: "Password must be at least 8 characters."},
	})
}

// Login validates a login payload
func Login(req model.LoginRequest) []FieldError {
	return Apply([]Rule{
		{Field: "accountNumber", Value: req.AccountNumber, Pattern: accountNumberRe, Message: "Invalid account number"},
		{Field: "password", Value: req.Password, MinLen: 8, Message: "Invalid password"},
	})
}

// Payment validates a payment-creation payload
func Payment(req model.CreatePaymentRequest) []FieldError {
	errs := Apply([]Rule{
		{Field: "receiverAccountNumber", Value: req.ReceiverAccountNumber, Pattern: accountNumberRe, Message: "Invalid receiver account number"},
		{Field: "currency", Value: req.Currency, Pattern: currencyRe, Message: "Currency must be a 3-letter code"},
		{Field: "swiftCode", Value: req.SwiftCode, Optional: true, Pattern: swiftRe, Message: "Invalid SWIFT code"},
	})
	if err := checkAmount(req.Amount); err != nil {
		errs = append(errs, *err)
	}
	return errs
}

// checkAmount validates the numeric literal itself so range and decimal
// precision are enforced before any float conversion happens.
func checkAmount(amount json.Number) *FieldError {
	fail := &FieldError{Field: "amount", Message: "Amount must be a positive number with at most 2 decimal places"}
	literal := amount.String()
	if literal == "" || !amountRe.MatchString(literal) {
		return fail
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil || value <= 0 {
		return fail
	}
	return nil
}
