package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	feeModel "smartedu_backend/internals/features/finance/fees/model"
)

// Charge is a fee schedule template; issuing it creates one Fee per student.
type Charge struct {
	ChargeID uuid.UUID `gorm:"column:charge_id;type:uuid;primaryKey" json:"charge_id"`

	ChargeAcademicYear string    `gorm:"column:charge_academic_year;type:varchar(9);not null" json:"charge_academic_year"`
	ChargeMonth        string    `gorm:"column:charge_month;type:varchar(12);not null" json:"charge_month"`
	ChargeDueDate      time.Time `gorm:"column:charge_due_date;not null" json:"charge_due_date"`

	ChargeBreakdown   datatypes.JSONSlice[feeModel.FeeItem] `gorm:"column:charge_breakdown" json:"charge_breakdown"`
	ChargeTotalAmount decimal.Decimal                       `gorm:"column:charge_total_amount;type:numeric(14,2);not null" json:"charge_total_amount"`

	ChargeCreatedByUserID *uuid.UUID `gorm:"column:charge_created_by_user_id;type:uuid" json:"charge_created_by_user_id,omitempty"`

	CreatedAt time.Time `gorm:"column:charge_created_at;autoCreateTime" json:"charge_created_at"`
	UpdatedAt time.Time `gorm:"column:charge_updated_at;autoUpdateTime" json:"charge_updated_at"`
}

func (Charge) TableName() string { return "charges" }

func (c *Charge) BeforeCreate(tx *gorm.DB) error {
	if c.ChargeID == uuid.Nil {
		c.ChargeID = uuid.New()
	}
	return nil
}
