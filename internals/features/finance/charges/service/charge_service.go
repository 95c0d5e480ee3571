package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartedu_backend/internals/features/finance/charges/dto"
	"smartedu_backend/internals/features/finance/charges/model"
	"smartedu_backend/internals/features/finance/charges/repository"
	feeModel "smartedu_backend/internals/features/finance/fees/model"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/logger"
	"smartedu_backend/internals/helpers/paginate"
)

// FeeCreator is the part of the fee service used when issuing a charge.
type FeeCreator interface {
	CreateFee(ctx context.Context, fees ...*feeModel.Fee) error
}

// UserChecker fails when any of the ids is not a known user.
type UserChecker interface {
	EnsureExist(ctx context.Context, ids []uuid.UUID) error
}

type ChargeService struct {
	repo     *repository.ChargeRepository
	fees     FeeCreator
	users    UserChecker
	tx       *database.Transactor
	validate *validator.Validate
}

func NewChargeService(repo *repository.ChargeRepository, fees FeeCreator, users UserChecker, tx *database.Transactor, v *validator.Validate) *ChargeService {
	return &ChargeService{repo: repo, fees: fees, users: users, tx: tx, validate: v}
}

func (s *ChargeService) CreateCharge(ctx context.Context, req dto.CreateChargeRequest, createdBy *uuid.UUID) (*model.Charge, error) {
	req.Normalize()
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	ch := req.ToModel(createdBy)
	if !ch.ChargeTotalAmount.GreaterThan(decimal.Zero) {
		return nil, apperror.Validation("charge total amount must be positive")
	}
	if err := s.repo.Create(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// GetCharge returns the latest charge; NOT_FOUND when none exists yet.
func (s *ChargeService) GetCharge(ctx context.Context) (*model.Charge, error) {
	ch, err := s.repo.FindLatest(ctx)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, apperror.NotFound("Charge not found")
	}
	return ch, nil
}

// IssueCharge creates one PENDING fee per user from the charge template.
// All fees are written in one transaction.
func (s *ChargeService) IssueCharge(ctx context.Context, chargeID uuid.UUID, req dto.IssueChargeRequest) (*dto.IssueChargeResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	ch, err := s.repo.FindByID(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, apperror.NotFound("Charge not found")
	}
	if err := s.users.EnsureExist(ctx, req.UserIDs); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(req.UserIDs))
	fees := make([]*feeModel.Fee, 0, len(req.UserIDs))
	for _, uid := range req.UserIDs {
		if _, dup := seen[uid]; dup {
			continue
		}
		seen[uid] = struct{}{}
		cid := ch.ChargeID
		fees = append(fees, &feeModel.Fee{
			FeeUserID:       uid,
			FeeChargeID:     &cid,
			FeeAcademicYear: ch.ChargeAcademicYear,
			FeeMonth:        ch.ChargeMonth,
			FeeDueDate:      ch.ChargeDueDate,
			FeeBreakdown:    append([]feeModel.FeeItem(nil), ch.ChargeBreakdown...),
			FeeTotalAmount:  ch.ChargeTotalAmount,
			FeePaidAmount:   decimal.Zero,
		})
	}

	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.fees.CreateFee(ctx, fees...)
	}); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).
		WithField("charge_id", ch.ChargeID).
		WithField("issued", len(fees)).
		Info("✅ charge issued")

	return &dto.IssueChargeResponse{ChargeID: ch.ChargeID, Issued: len(fees), Fees: fees}, nil
}

func (s *ChargeService) QueryCharges(ctx context.Context, d paginate.Descriptor) (*paginate.QueryResult[model.Charge], error) {
	return paginate.Execute(ctx, s.repo.Collection(), nil, d)
}
