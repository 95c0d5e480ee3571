package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	feeModel "smartedu_backend/internals/features/finance/fees/model"
	"smartedu_backend/internals/features/finance/payments/model"
	userModel "smartedu_backend/internals/features/users/user/model"
	"smartedu_backend/internals/helpers/paginate"
)

/* ===== store ===== */

type fakeStore struct {
	mu        sync.Mutex
	rows      map[string]model.Payment
	rowLocks  map[string]*sync.Mutex
	createErr error
	updates   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]model.Payment{}, rowLocks: map[string]*sync.Mutex{}}
}

func (s *fakeStore) Create(_ context.Context, p *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	s.rows[p.PaymentTransactionID] = *p
	return nil
}

func (s *fakeStore) FindByTransactionID(_ context.Context, txID string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[txID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// LockByTransactionID takes a per-row lock when running under rowLockTx,
// released when that transaction ends.
func (s *fakeStore) LockByTransactionID(ctx context.Context, txID string) (*model.Payment, error) {
	if h, ok := ctx.Value(heldLocksKey{}).(*heldLocks); ok {
		s.mu.Lock()
		m, ok := s.rowLocks[txID]
		if !ok {
			m = &sync.Mutex{}
			s.rowLocks[txID] = m
		}
		s.mu.Unlock()
		m.Lock()
		h.unlock = append(h.unlock, m.Unlock)
	}
	return s.FindByTransactionID(ctx, txID)
}

func (s *fakeStore) Update(_ context.Context, p *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	s.rows[p.PaymentTransactionID] = *p
	return nil
}

func (s *fakeStore) Collection() paginate.Collection[model.Payment] { return s }

func (s *fakeStore) Count(context.Context, paginate.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), nil
}

func (s *fakeStore) Find(context.Context, paginate.Filter, paginate.FindOptions) ([]model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Payment, 0, len(s.rows))
	for _, p := range s.rows {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeStore) get(txID string) model.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[txID]
}

/* ===== users ===== */

type fakeUsers map[uuid.UUID]*userModel.UserModel

func (f fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return f[id], nil
}

/* ===== fee ledger ===== */

type fakeFees struct {
	mu       sync.Mutex
	fees     map[uuid.UUID]*feeModel.Fee
	applied  []decimal.Decimal
	applyErr error
	onApply  func() // runs before the ledger lock, may block
}

func (f *fakeFees) GetFeeByID(_ context.Context, id uuid.UUID) (*feeModel.Fee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fee, ok := f.fees[id]
	if !ok {
		return nil, nil
	}
	cp := *fee
	return &cp, nil
}

func (f *fakeFees) GetFeeByUserID(_ context.Context, userID uuid.UUID) (*feeModel.Fee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fee := range f.fees {
		if fee.FeeUserID == userID && fee.FeeStatus != feeModel.FeeStatusPaid {
			cp := *fee
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeFees) ApplyPayment(_ context.Context, feeID uuid.UUID, amount decimal.Decimal) (*feeModel.Fee, error) {
	if f.onApply != nil {
		f.onApply()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	fee, ok := f.fees[feeID]
	if !ok {
		return nil, errors.New("fee vanished")
	}
	fee.FeePaidAmount = fee.FeePaidAmount.Add(amount)
	f.applied = append(f.applied, amount)
	cp := *fee
	return &cp, nil
}

func (f *fakeFees) appliedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

/* ===== gateway ===== */

type fakeGateway struct {
	mu   sync.Mutex
	reqs []InitiateRequest
	fn   func(ctx context.Context, req InitiateRequest) (*InitiateResponse, error)
}

func (g *fakeGateway) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResponse, error) {
	g.mu.Lock()
	g.reqs = append(g.reqs, req)
	g.mu.Unlock()
	if g.fn != nil {
		return g.fn(ctx, req)
	}
	return &InitiateResponse{
		Status:      InitiateStatusSuccess,
		Token:       "snap-token",
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/" + req.TransactionID,
	}, nil
}

/* ===== receipts ===== */

type fakeRenderer struct {
	got *ReceiptData
	err error
}

func (r *fakeRenderer) Render(d ReceiptData) (io.Reader, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.got = &d
	return strings.NewReader("%PDF-fake"), nil
}

/* ===== transactor: one tx at a time stands in for the row lock ===== */

type serialTx struct{ mu sync.Mutex }

func (t *serialTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

/* ===== transactor: row locks only, like SELECT ... FOR UPDATE ===== */

type heldLocksKey struct{}

type heldLocks struct{ unlock []func() }

type rowLockTx struct{}

func (rowLockTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	h := &heldLocks{}
	defer func() {
		for _, u := range h.unlock {
			u()
		}
	}()
	return fn(context.WithValue(ctx, heldLocksKey{}, h))
}
