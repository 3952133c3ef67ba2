package service

import (
	"context"
	"sort"

	"payment_portal/internal/model"
)

// In-memory repositories for service tests.

type fakeUserRepo struct {
	users  []*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindByAccountNumber(ctx context.Context, accountNumber string) (*model.User, error) {
	for _, u := range r.users {
		if u.AccountNumber == accountNumber {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type fakePaymentRepo struct {
	users    *fakeUserRepo
	payments []*model.Payment
	nextID   int64
}

func newFakePaymentRepo(users *fakeUserRepo) *fakePaymentRepo {
	return &fakePaymentRepo{users: users, nextID: 1}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	p.ID = r.nextID
	r.nextID++
	copied := *p
	r.payments = append(r.payments, &copied)
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id int64) (*model.Payment, error) {
	for _, p := range r.payments {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) view(p *model.Payment) model.PaymentView {
	v := model.PaymentView{Payment: *p}
	if sender, _ := r.users.FindByID(context.Background(), p.SenderID); sender != nil {
		v.Sender = model.Counterparty{FullName: sender.FullName, AccountNumber: sender.AccountNumber}
	}
	if receiver, _ := r.users.FindByID(context.Background(), p.ReceiverID); receiver != nil {
		v.Receiver = model.Counterparty{FullName: receiver.FullName, AccountNumber: receiver.AccountNumber}
	}
	return v
}

func (r *fakePaymentRepo) FindByParticipant(ctx context.Context, userID int64) ([]model.PaymentView, error) {
	var views []model.PaymentView
	for _, p := range r.payments {
		if p.SenderID == userID || p.ReceiverID == userID {
			views = append(views, r.view(p))
		}
	}
	sortNewestFirst(views)
	return views, nil
}

func (r *fakePaymentRepo) FindAll(ctx context.Context) ([]model.PaymentView, error) {
	var views []model.PaymentView
	for _, p := range r.payments {
		views = append(views, r.view(p))
	}
	sortNewestFirst(views)
	return views, nil
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	for _, p := range r.payments {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return ErrPaymentNotFound
}

func sortNewestFirst(views []model.PaymentView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
}
