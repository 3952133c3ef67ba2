package validate

import (
	"encoding/json"
	"testing"

	"payment_portal/internal/model"

	"github.com/stretchr/testify/assert"
)

func validRegister() model.RegisterRequest {
	return model.RegisterRequest{
		FullName:      "Alice Customer",
		IDNumber:      "8001015009087",
		AccountNumber: "10000001",
		Password:      "Secur3P@ssw0rd",
	}
}

func validPayment() model.CreatePaymentRequest {
	return model.CreatePaymentRequest{
		ReceiverAccountNumber: "10000002",
		Amount:                json.Number("100.50"),
		Currency:              "USD",
		SwiftCode:             "ABCDZA2XXXX",
	}
}

func fieldsOf(errs []FieldError) []string {
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestRegister_Valid(t *testing.T) {
	assert.Empty(t, Register(validRegister()))
}

func TestRegister_FullName(t *testing.T) {
	req := validRegister()

	req.FullName = "Zoë van der Merwe-O'Brien Jr."
	assert.Empty(t, Register(req), "accented names are valid")

	req.FullName = "A"
	assert.Contains(t, fieldsOf(Register(req)), "fullName")

	req.FullName = "Alice123"
	assert.Contains(t, fieldsOf(Register(req)), "fullName")
}

func TestRegister_IDNumber(t *testing.T) {
	req := validRegister()

	req.IDNumber = "123456789012" // 12 digits
	assert.Contains(t, fieldsOf(Register(req)), "idNumber")

	req.IDNumber = "12345678901234" // 14 digits
	assert.Contains(t, fieldsOf(Register(req)), "idNumber")

	req.IDNumber = "800101500908a"
	assert.Contains(t, fieldsOf(Register(req)), "idNumber")
}

func TestRegister_AccountNumber(t *testing.T) {
	req := validRegister()

	req.AccountNumber = "acc_1-B"
	assert.Empty(t, Register(req))

	req.AccountNumber = "1234" // too short
	assert.Contains(t, fieldsOf(Register(req)), "accountNumber")

	req.AccountNumber = "has space"
	assert.Contains(t, fieldsOf(Register(req)), "accountNumber")
}

func TestRegister_Password(t *testing.T) {
	req := validRegister()
	req.Password = "short7!"
	assert.Contains(t, fieldsOf(Register(req)), "password")

	// the minimum is 8 characters, not 8 bytes
	req.Password = "пароль" // 6 characters, 12 bytes
	assert.Contains(t, fieldsOf(Register(req)), "password")

	req.Password = "пароль12" // 8 characters
	assert.NotContains(t, fieldsOf(Register(req)), "password")
}

func TestRegister_AccumulatesAllFields(t *testing.T) {
	errs := Register(model.RegisterRequest{})
	assert.ElementsMatch(t, []string{"fullName", "idNumber", "accountNumber", "password"}, fieldsOf(errs))
}

func TestRegister_StripsMarkupBeforeMatching(t *testing.T) {
	req := validRegister()
	// after stripping the script block the remaining name is valid, so
	// the dangerous payload can never survive into an accepted field
	req.FullName = "Alice<script>alert(1)</script>"
	assert.Empty(t, Register(req))

	// stripping alone must not rescue a field that is garbage underneath
	req.FullName = "<script>alert(1)</script>"
	assert.Contains(t, fieldsOf(Register(req)), "fullName")
}

func TestLogin(t *testing.T) {
	assert.Empty(t, Login(model.LoginRequest{AccountNumber: "10000001", Password: "Secur3P@ssw0rd"}))

	errs := Login(model.LoginRequest{AccountNumber: "x", Password: "short"})
	assert.ElementsMatch(t, []string{"accountNumber", "password"}, fieldsOf(errs))
}

func TestPayment_Valid(t *testing.T) {
	assert.Empty(t, Payment(validPayment()))
}

func TestPayment_SwiftCode(t *testing.T) {
	req := validPayment()

	req.SwiftCode = "ABCDZA2X" // 8 chars
	assert.Empty(t, Payment(req))

	req.SwiftCode = "ABCDZA2XXXX" // 11 chars
	assert.Empty(t, Payment(req))

	req.SwiftCode = "" // optional
	assert.Empty(t, Payment(req))

	req.SwiftCode = "ABCDZA2XX" // 9 chars
	assert.Contains(t, fieldsOf(Payment(req)), "swiftCode")

	req.SwiftCode = "12CDZA2X" // first six must be letters
	assert.Contains(t, fieldsOf(Payment(req)), "swiftCode")
}

func TestPayment_Currency(t *testing.T) {
	req := validPayment()

	req.Currency = "usd"
	assert.Contains(t, fieldsOf(Payment(req)), "currency")

	req.Currency = "USDX"
	assert.Contains(t, fieldsOf(Payment(req)), "currency")
}

func TestPayment_Amount(t *testing.T) {
	req := validPayment()

	for _, ok := range []string{"1", "0.01", "100.50", "999999.99"} {
		req.Amount = json.Number(ok)
		assert.Empty(t, Payment(req), "amount %s should be valid", ok)
	}

	for _, bad := range []string{"0", "0.00", "-5", "1.234", "abc", ""} {
		req.Amount = json.Number(bad)
		assert.Contains(t, fieldsOf(Payment(req)), "amount", "amount %q should be rejected", bad)
	}
}

func TestPayment_AccumulatesAcrossFields(t *testing.T) {
	errs := Payment(model.CreatePaymentRequest{
		ReceiverAccountNumber: "x",
		Amount:                json.Number("-1"),
		Currency:              "usd",
		SwiftCode:             "bad",
	})
	assert.ElementsMatch(t, []string{"receiverAccountNumber", "currency", "swiftCode", "amount"}, fieldsOf(errs))
}
