package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	feeModel "smartedu_backend/internals/features/finance/fees/model"
	"smartedu_backend/internals/features/finance/payments/model"
	userModel "smartedu_backend/internals/features/users/user/model"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/logger"
	"smartedu_backend/internals/helpers/metrics"
	"smartedu_backend/internals/helpers/paginate"
)

/* =======================================================================
   Collaborators
======================================================================= */

type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	FindByTransactionID(ctx context.Context, txID string) (*model.Payment, error)
	LockByTransactionID(ctx context.Context, txID string) (*model.Payment, error)
	Update(ctx context.Context, p *model.Payment) error
	Collection() paginate.Collection[model.Payment]
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
}

type FeeLedger interface {
	GetFeeByID(ctx context.Context, id uuid.UUID) (*feeModel.Fee, error)
	GetFeeByUserID(ctx context.Context, userID uuid.UUID) (*feeModel.Fee, error)
	ApplyPayment(ctx context.Context, feeID uuid.UUID, amount decimal.Decimal) (*feeModel.Fee, error)
}

type ReceiptRenderer interface {
	Render(data ReceiptData) (io.Reader, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Config struct {
	Currency string
	// public origin of this API, callbacks are built on top of it
	BaseURL        string
	GatewayTimeout time.Duration
	SchoolName     string
}

/* =======================================================================
   Types
======================================================================= */

type CreateResult struct {
	Payment     *model.Payment `json:"payment"`
	RedirectURL string         `json:"redirect_url"`
}

type ReceiptData struct {
	SchoolName    string
	StudentID     string
	StudentName   string
	Class         string
	Month         string
	AcademicYear  string
	Amount        decimal.Decimal
	Currency      string
	TransactionID string
	PaymentDate   *time.Time
	PaymentStatus model.PaymentStatus
	DocumentID    string
	GeneratedAt   time.Time
}

type ReceiptDocument struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

/* =======================================================================
   Service
======================================================================= */

type PaymentService struct {
	store    PaymentStore
	users    UserLookup
	fees     FeeLedger
	gateway  Gateway
	receipts ReceiptRenderer
	tx       Transactor
	cfg      Config

	Now func() time.Time
}

func NewPaymentService(store PaymentStore, users UserLookup, fees FeeLedger, gateway Gateway, receipts ReceiptRenderer, tx Transactor, cfg Config) *PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = "IDR"
	}
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &PaymentService{
		store: store, users: users, fees: fees, gateway: gateway,
		receipts: receipts, tx: tx, cfg: cfg, Now: time.Now,
	}
}

// NewTransactionID = "FEE-" + 32 hex digits of a random UUID.
func NewTransactionID() string {
	id := uuid.New()
	return "FEE-" + hex.EncodeToString(id[:])
}

func (s *PaymentService) callbackURL(txID, suffix string) string {
	return s.cfg.BaseURL + "/api/v1/payments/" + txID + "/" + suffix
}

/* =======================================================================
   Create: user → fee aktif → gateway → simpan (processing)
======================================================================= */

func (s *PaymentService) Create(ctx context.Context, userID uuid.UUID, meta RequestMetadata) (*CreateResult, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	fee, err := s.fees.GetFeeByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, apperror.NotFound("Fee not found")
	}

	amount := fee.Outstanding()
	if !amount.IsPositive() {
		return nil, apperror.Validation("fee has nothing left to pay")
	}

	txID := NewTransactionID()
	req := InitiateRequest{
		TransactionID: txID,
		Amount:        amount,
		Currency:      s.cfg.Currency,
		SuccessURL:    s.callbackURL(txID, "success"),
		FailURL:       s.callbackURL(txID, "failed"),
		CancelURL:     s.callbackURL(txID, "cancel"),
		IPNURL:        s.cfg.BaseURL + "/api/v1/payments/notification",
		Buyer: BuyerProfile{
			Name:    user.UserName,
			Email:   user.Email,
			Phone:   user.PhoneNumber,
			Address: user.Address,
		},
		ProductName: "School Fee - Class " + user.Class,
		UserID:      user.ID,
		FeeID:       fee.FeeID,
	}

	log := logger.WithContext(ctx).WithFields(logrus.Fields{
		"transaction_id": txID,
		"fee_id":         fee.FeeID,
		"amount":         amount.String(),
	})

	gctx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	resp, err := s.gateway.Initiate(gctx, req)
	cancel()
	if err != nil {
		metrics.GatewayInitFailures.Inc()
		log.WithError(err).Warn("❌ gateway handoff failed")
		return nil, apperror.GatewayInit("payment gateway is unavailable", err)
	}
	if !resp.Succeeded() {
		metrics.GatewayInitFailures.Inc()
		reason := ""
		if resp != nil {
			reason = resp.FailedReason
		}
		log.WithField("reason", reason).Warn("❌ gateway refused the checkout session")
		return nil, apperror.GatewayInit("payment gateway refused the checkout session", nil).WithDetails(reason)
	}

	checkout := resp.RedirectURL
	p := &model.Payment{
		PaymentUserID:          user.ID,
		PaymentFeeID:           fee.FeeID,
		PaymentAmount:          amount,
		PaymentCurrency:        s.cfg.Currency,
		PaymentTransactionID:   txID,
		PaymentStatus:          model.PaymentStatusProcessing,
		PaymentGatewayProvider: model.GatewayProviderMidtrans,
		PaymentCheckoutURL:     &checkout,
		PaymentMetadata: model.PaymentMetadata{
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
		},
	}
	if resp.Token != "" {
		tok := resp.Token
		p.PaymentGatewayToken = &tok
	}

	if err := s.store.Create(ctx, p); err != nil {
		// sesi gateway sudah terbuka tapi tidak tercatat; callback-nya nanti NOT_FOUND
		log.WithError(err).Error("❌ payment not persisted after gateway handoff")
		return nil, err
	}

	metrics.PaymentsCreated.Inc()
	log.Info("✅ payment created")
	return &CreateResult{Payment: p, RedirectURL: checkout}, nil
}

/* =======================================================================
   Resolve: callback gateway (success / failed)
======================================================================= */

func (s *PaymentService) Resolve(ctx context.Context, txID string, outcome model.PaymentStatus, payload GatewayPayload, meta RequestMetadata) (*model.Payment, error) {
	if outcome != model.PaymentStatusSuccess && outcome != model.PaymentStatusFailed {
		return nil, apperror.Validation("outcome must be success or failed")
	}

	var (
		out   *model.Payment
		label string
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.store.LockByTransactionID(ctx, txID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("Payment not found")
		}

		switch {
		case p.IsOpen():
			now := s.Now()
			p.PaymentStatus = outcome
			p.PaymentGatewayResponse = datatypes.JSONMap(payload)
			p.PaymentDate = &now
			if outcome == model.PaymentStatusSuccess {
				if _, err := s.fees.ApplyPayment(ctx, p.PaymentFeeID, p.PaymentAmount); err != nil {
					return err
				}
			}
			label = string(outcome)

		case p.PaymentStatus == outcome:
			// callback ulang: status & payload tetap, ledger tidak disentuh lagi
			label = "duplicate"

		default:
			metrics.ResolveConflicts.Inc()
			logger.WithContext(ctx).WithFields(logrus.Fields{
				"transaction_id": txID,
				"current":        p.PaymentStatus,
				"outcome":        outcome,
			}).Warn("⚠️ callback contradicts a terminal payment")
			return apperror.Conflict(fmt.Sprintf("payment is already %s", p.PaymentStatus))
		}

		p.PaymentMetadata.Attempts++
		p.PaymentMetadata.IPAddress = meta.IPAddress
		p.PaymentMetadata.UserAgent = meta.UserAgent

		if err := s.store.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsResolved.WithLabelValues(label).Inc()
	return out, nil
}

/* =======================================================================
   Refund: hanya dari success
======================================================================= */

// Refund records a refund. The fee ledger keeps its paid amount.
func (s *PaymentService) Refund(ctx context.Context, txID string, amount decimal.Decimal, reason string) (*model.Payment, error) {
	if !amount.IsPositive() {
		return nil, apperror.Validation("refund amount must be positive")
	}

	var out *model.Payment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.store.LockByTransactionID(ctx, txID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("Payment not found")
		}
		if p.PaymentStatus != model.PaymentStatusSuccess {
			return apperror.InvalidTransition(fmt.Sprintf("cannot refund a %s payment", p.PaymentStatus))
		}
		if amount.GreaterThan(p.PaymentAmount) {
			return apperror.Validation("refund amount exceeds payment amount")
		}

		now := s.Now()
		reason = strings.TrimSpace(reason)
		p.PaymentStatus = model.PaymentStatusRefunded
		p.PaymentRefundAmount = decimal.NewNullDecimal(amount)
		p.PaymentRefundReason = &reason
		p.PaymentRefundedAt = &now

		if err := s.store.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRefunded.Inc()
	logger.WithContext(ctx).WithFields(logrus.Fields{
		"transaction_id": txID,
		"amount":         amount.String(),
	}).Info("↩️ payment refunded")
	return out, nil
}

/* =======================================================================
   Receipt (read-only)
======================================================================= */

func (s *PaymentService) Receipt(ctx context.Context, txID string) (*ReceiptDocument, error) {
	p, err := s.store.FindByTransactionID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Payment not found")
	}

	user, err := s.users.GetUserByID(ctx, p.PaymentUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	fee, err := s.fees.GetFeeByID(ctx, p.PaymentFeeID)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, apperror.NotFound("Fee not found")
	}

	studentID := user.RollNumber
	if studentID == "" {
		studentID = user.ID.String()
	}

	body, err := s.receipts.Render(ReceiptData{
		SchoolName:    s.cfg.SchoolName,
		StudentID:     studentID,
		StudentName:   user.UserName,
		Class:         user.Class,
		Month:         fee.FeeMonth,
		AcademicYear:  fee.FeeAcademicYear,
		Amount:        p.PaymentAmount,
		Currency:      p.PaymentCurrency,
		TransactionID: p.PaymentTransactionID,
		PaymentDate:   p.PaymentDate,
		PaymentStatus: p.PaymentStatus,
		DocumentID:    p.PaymentID.String(),
		GeneratedAt:   s.Now(),
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "render receipt failed", fiber.StatusInternalServerError, err)
	}

	return &ReceiptDocument{
		Filename:    "payments-" + p.PaymentTransactionID + ".pdf",
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

/* =======================================================================
   Reads
======================================================================= */

func (s *PaymentService) GetByTransactionID(ctx context.Context, txID string) (*model.Payment, error) {
	p, err := s.store.FindByTransactionID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Payment not found")
	}
	return p, nil
}

func (s *PaymentService) QueryPayments(ctx context.Context, base paginate.Filter, d paginate.Descriptor) (*paginate.QueryResult[model.Payment], error) {
	return paginate.Execute(ctx, s.store.Collection(), base, d)
}
