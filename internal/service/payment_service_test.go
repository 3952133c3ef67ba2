package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"payment_portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentFixture(t *testing.T) (PaymentService, *fakeUserRepo, *fakePaymentRepo, *model.User, *model.User) {
	t.Helper()
	userRepo := newFakeUserRepo()
	paymentRepo := newFakePaymentRepo(userRepo)
	svc := NewPaymentService(paymentRepo, userRepo)

	alice := &model.User{FullName: "Alice Customer", AccountNumber: "10000001", Role: model.RoleCustomer}
	bob := &model.User{FullName: "Bob Receiver", AccountNumber: "10000002", Role: model.RoleCustomer}
	require.NoError(t, userRepo.Create(context.Background(), alice))
	require.NoError(t, userRepo.Create(context.Background(), bob))

	return svc, userRepo, paymentRepo, alice, bob
}

func createReq(receiver string) model.CreatePaymentRequest {
	return model.CreatePaymentRequest{
		ReceiverAccountNumber: receiver,
		Amount:                json.Number("100.50"),
		Currency:              "USD",
		SwiftCode:             "ABCDZA2X",
	}
}

func TestPaymentService_Create(t *testing.T) {
	svc, _, _, alice, bob := paymentFixture(t)

	payment, err := svc.Create(context.Background(), alice.ID, createReq(bob.AccountNumber))

	require.NoError(t, err)
	assert.Equal(t, alice.ID, payment.SenderID)
	assert.Equal(t, bob.ID, payment.ReceiverID)
	assert.Equal(t, 100.50, payment.Amount)
	assert.Equal(t, "USD", payment.Currency)
	assert.Equal(t, bob.AccountNumber, payment.PayeeAccount)
	assert.Equal(t, model.StatusPending, payment.Status)
	assert.WithinDuration(t, time.Now(), payment.CreatedAt, 5*time.Second)
}

func TestPaymentService_Create_ReceiverNotFound(t *testing.T) {
	svc, _, _, alice, _ := paymentFixture(t)

	_, err := svc.Create(context.Background(), alice.ID, createReq("00000000"))

	assert.ErrorIs(t, err, ErrReceiverNotFound)
}

func TestPaymentService_Create_SelfPayment(t *testing.T) {
	svc, _, _, alice, _ := paymentFixture(t)

	// amount is perfectly valid; the self-payment rule rejects anyway
	_, err := svc.Create(context.Background(), alice.ID, createReq(alice.AccountNumber))

	assert.ErrorIs(t, err, ErrSelfPayment)
}

func TestPaymentService_ListForUser_IsolatesParticipants(t *testing.T) {
	svc, userRepo, _, alice, bob := paymentFixture(t)

	carol := &model.User{FullName: "Carol Other", AccountNumber: "10000003", Role: model.RoleCustomer}
	require.NoError(t, userRepo.Create(context.Background(), carol))

	_, err := svc.Create(context.Background(), alice.ID, createReq(bob.AccountNumber))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), carol.ID, createReq(bob.AccountNumber))
	require.NoError(t, err)

	aliceList, err := svc.ListForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	assert.Equal(t, alice.ID, aliceList[0].SenderID)
	assert.Equal(t, "Bob Receiver", aliceList[0].Receiver.FullName)
	assert.Equal(t, "10000002", aliceList[0].Receiver.AccountNumber)

	// bob sees both: he is the receiver on each
	bobList, err := svc.ListForUser(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobList, 2)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPaymentService_VerifyThenSubmit(t *testing.T) {
	svc, _, _, alice, bob := paymentFixture(t)

	payment, err := svc.Create(context.Background(), alice.ID, createReq(bob.AccountNumber))
	require.NoError(t, err)

	verified, err := svc.Verify(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusVerified, verified.Status)

	submitted, err := svc.Submit(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSubmitted, submitted.Status)
}

func TestPaymentService_TransitionMatrix(t *testing.T) {
	svc, _, _, alice, bob := paymentFixture(t)

	payment, err := svc.Create(context.Background(), alice.ID, createReq(bob.AccountNumber))
	require.NoError(t, err)

	// Pending: submit skips a step
	_, err = svc.Submit(context.Background(), payment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Verify(context.Background(), payment.ID)
	require.NoError(t, err)

	// Verified: re-verify is rejected, not silently re-applied
	_, err = svc.Verify(context.Background(), payment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Submit(context.Background(), payment.ID)
	require.NoError(t, err)

	// Submitted is terminal
	_, err = svc.Verify(context.Background(), payment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.Submit(context.Background(), payment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPaymentService_UnknownPayment(t *testing.T) {
	svc, _, _, _, _ := paymentFixture(t)

	_, err := svc.Verify(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = svc.Submit(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
