package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartedu_backend/internals/features/finance/fees/model"
)

type CreateFeeRequest struct {
	UserID       uuid.UUID       `json:"user_id" validate:"required"`
	ChargeID     *uuid.UUID      `json:"charge_id,omitempty"`
	AcademicYear string          `json:"academic_year" validate:"required,len=9"`
	Month        string          `json:"month" validate:"required"`
	DueDate      time.Time       `json:"due_date" validate:"required"`
	Breakdown    []model.FeeItem `json:"fee_breakdown" validate:"required,min=1,dive"`
	// TotalAmount is optional; defaults to the breakdown sum.
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
}

func (r *CreateFeeRequest) Normalize() {
	r.AcademicYear = strings.TrimSpace(r.AcademicYear)
	r.Month = strings.TrimSpace(r.Month)
	for i := range r.Breakdown {
		r.Breakdown[i].Type = model.FeeType(strings.ToUpper(strings.TrimSpace(string(r.Breakdown[i].Type))))
	}
}

func (r *CreateFeeRequest) ToModel() *model.Fee {
	total := model.SumBreakdown(r.Breakdown)
	if r.TotalAmount != nil {
		total = *r.TotalAmount
	}
	return &model.Fee{
		FeeUserID:       r.UserID,
		FeeChargeID:     r.ChargeID,
		FeeAcademicYear: r.AcademicYear,
		FeeMonth:        r.Month,
		FeeDueDate:      r.DueDate,
		FeeBreakdown:    r.Breakdown,
		FeeTotalAmount:  total,
		FeePaidAmount:   decimal.Zero,
	}
}
