package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FeeStatus string

const (
	FeeStatusPending       FeeStatus = "PENDING"
	FeeStatusPartiallyPaid FeeStatus = "PARTIALLY_PAID"
	FeeStatusPaid          FeeStatus = "PAID"
	FeeStatusOverdue       FeeStatus = "OVERDUE"
)

type FeeType string

const (
	FeeTypeTuition    FeeType = "TUITION"
	FeeTypeExam       FeeType = "EXAM"
	FeeTypeLibrary    FeeType = "LIBRARY"
	FeeTypeLaboratory FeeType = "LABORATORY"
	FeeTypeSports     FeeType = "SPORTS"
	FeeTypeOther      FeeType = "OTHER"
)

var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FeeItem is one line of a fee breakdown (stored as JSON).
type FeeItem struct {
	Type        FeeType         `json:"type" validate:"required,oneof=TUITION EXAM LIBRARY LABORATORY SPORTS OTHER"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=200"`
}

// Fee = tagihan satu siswa untuk satu periode.
// FeeStatus tidak di-set langsung; selalu hasil DeriveStatus (lihat service).
type Fee struct {
	FeeID       uuid.UUID  `gorm:"column:fee_id;type:uuid;primaryKey" json:"fee_id"`
	FeeUserID   uuid.UUID  `gorm:"column:fee_user_id;type:uuid;not null;index:idx_fees_user_status,priority:1" json:"fee_user_id"`
	FeeChargeID *uuid.UUID `gorm:"column:fee_charge_id;type:uuid;index" json:"fee_charge_id,omitempty"`

	FeeAcademicYear string    `gorm:"column:fee_academic_year;type:varchar(9);not null" json:"fee_academic_year"`
	FeeMonth        string    `gorm:"column:fee_month;type:varchar(12);not null" json:"fee_month"`
	FeeDueDate      time.Time `gorm:"column:fee_due_date;not null;index" json:"fee_due_date"`

	FeeBreakdown datatypes.JSONSlice[FeeItem] `gorm:"column:fee_breakdown" json:"fee_breakdown"`

	FeeTotalAmount decimal.Decimal `gorm:"column:fee_total_amount;type:numeric(14,2);not null" json:"fee_total_amount"`
	FeePaidAmount  decimal.Decimal `gorm:"column:fee_paid_amount;type:numeric(14,2);not null;default:0" json:"fee_paid_amount"`
	FeeStatus      FeeStatus       `gorm:"column:fee_status;type:varchar(20);not null;default:'PENDING';index:idx_fees_user_status,priority:2" json:"fee_status"`

	CreatedAt time.Time `gorm:"column:fee_created_at;autoCreateTime" json:"fee_created_at"`
	UpdatedAt time.Time `gorm:"column:fee_updated_at;autoUpdateTime" json:"fee_updated_at"`
}

func (Fee) TableName() string { return "fees" }

func (f *Fee) BeforeCreate(tx *gorm.DB) error {
	if f.FeeID == uuid.Nil {
		f.FeeID = uuid.New()
	}
	return nil
}

// Outstanding = total - paid, never below zero.
func (f *Fee) Outstanding() decimal.Decimal {
	out := f.FeeTotalAmount.Sub(f.FeePaidAmount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// SumBreakdown totals the breakdown lines.
func SumBreakdown(items []FeeItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}
