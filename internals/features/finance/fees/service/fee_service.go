package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"smartedu_backend/internals/features/finance/fees/model"
	"smartedu_backend/internals/features/finance/fees/repository"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/logger"
	"smartedu_backend/internals/helpers/metrics"
	"smartedu_backend/internals/helpers/paginate"
)

type FeeService struct {
	repo *repository.FeeRepository
	tx   *database.Transactor
	Now  func() time.Time
}

func NewFeeService(repo *repository.FeeRepository, tx *database.Transactor) *FeeService {
	return &FeeService{repo: repo, tx: tx, Now: time.Now}
}

// CreateFee stores new fees with their status derived, never taken from input.
func (s *FeeService) CreateFee(ctx context.Context, fees ...*model.Fee) error {
	now := s.Now()
	for _, f := range fees {
		if f.FeeTotalAmount.IsNegative() {
			return apperror.Validation("fee total amount must not be negative")
		}
		if f.FeePaidAmount.IsNegative() {
			return apperror.Validation("fee paid amount must not be negative")
		}
		f.FeeStatus = DeriveStatus(f.FeePaidAmount, f.FeeTotalAmount, f.FeeDueDate, now)
	}
	return s.repo.Create(ctx, fees...)
}

// GetFeeByID returns nil, nil when absent.
func (s *FeeService) GetFeeByID(ctx context.Context, id uuid.UUID) (*model.Fee, error) {
	return s.repo.FindByID(ctx, id)
}

// GetFeeByUserID returns the user's active fee: the earliest-due fee that is
// not PAID yet. nil, nil when the user owes nothing.
func (s *FeeService) GetFeeByUserID(ctx context.Context, userID uuid.UUID) (*model.Fee, error) {
	return s.repo.FindActiveByUser(ctx, userID)
}

// ApplyPayment adds amount to the fee's paid total and re-derives the status
// in the same step. Joins the caller's transaction when ctx carries one.
func (s *FeeService) ApplyPayment(ctx context.Context, feeID uuid.UUID, amount decimal.Decimal) (*model.Fee, error) {
	if amount.IsNegative() {
		return nil, apperror.Validation("payment amount must not be negative")
	}

	var out *model.Fee
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		fee, err := s.repo.LockByID(ctx, feeID)
		if err != nil {
			return err
		}
		if fee == nil {
			return apperror.NotFound("Fee not found")
		}

		fee.FeePaidAmount = fee.FeePaidAmount.Add(amount)
		fee.FeeStatus = DeriveStatus(fee.FeePaidAmount, fee.FeeTotalAmount, fee.FeeDueDate, s.Now())

		if IsOverpaid(fee.FeePaidAmount, fee.FeeTotalAmount) {
			metrics.FeeOverpayments.Inc()
			logger.WithContext(ctx).WithFields(logrus.Fields{
				"fee_id": fee.FeeID,
				"paid":   fee.FeePaidAmount.String(),
				"total":  fee.FeeTotalAmount.String(),
			}).Warn("⚠️ fee overpaid, status capped at PAID")
		}

		if err := s.repo.UpdateLedger(ctx, fee); err != nil {
			return err
		}
		out = fee
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FeeService) QueryFees(ctx context.Context, base paginate.Filter, d paginate.Descriptor) (*paginate.QueryResult[model.Fee], error) {
	return paginate.Execute(ctx, s.repo.Collection(), base, d)
}

// SweepOverdue marks every open fee past its due date as OVERDUE.
func (s *FeeService) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkOverdue(ctx, s.Now())
	if err != nil {
		return 0, fmt.Errorf("sweep overdue: %w", err)
	}
	if n > 0 {
		metrics.FeesMarkedOverdue.Add(float64(n))
	}
	return n, nil
}
