package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartedu_backend/internals/features/finance/charges/model"
	feeModel "smartedu_backend/internals/features/finance/fees/model"
)

type CreateChargeRequest struct {
	AcademicYear string             `json:"academic_year" validate:"required,len=9"`
	Month        string             `json:"month" validate:"required"`
	DueDate      time.Time          `json:"due_date" validate:"required"`
	Breakdown    []feeModel.FeeItem `json:"charge_breakdown" validate:"required,min=1,dive"`
	// kosong = jumlah breakdown
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
}

// IssueChargeRequest: daftar siswa yang ditagih dari template charge
type IssueChargeRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"required,min=1"`
}

func (r *CreateChargeRequest) Normalize() {
	r.AcademicYear = strings.TrimSpace(r.AcademicYear)
	r.Month = strings.TrimSpace(r.Month)
	for i := range r.Breakdown {
		r.Breakdown[i].Type = feeModel.FeeType(strings.ToUpper(strings.TrimSpace(string(r.Breakdown[i].Type))))
	}
}

func (r *CreateChargeRequest) ToModel(createdBy *uuid.UUID) *model.Charge {
	total := feeModel.SumBreakdown(r.Breakdown)
	if r.TotalAmount != nil {
		total = *r.TotalAmount
	}
	return &model.Charge{
		ChargeAcademicYear:    r.AcademicYear,
		ChargeMonth:           r.Month,
		ChargeDueDate:         r.DueDate,
		ChargeBreakdown:       r.Breakdown,
		ChargeTotalAmount:     total,
		ChargeCreatedByUserID: createdBy,
	}
}

type IssueChargeResponse struct {
	ChargeID uuid.UUID       `json:"charge_id"`
	Issued   int             `json:"issued"`
	Fees     []*feeModel.Fee `json:"fees"`
}
