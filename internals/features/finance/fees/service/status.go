package service

import (
	"time"

	"github.com/shopspring/decimal"

	"smartedu_backend/internals/features/finance/fees/model"
)

// DeriveStatus computes a fee's status from its amounts and due date.
//
//	paid == 0           -> PENDING
//	0 < paid < total    -> PARTIALLY_PAID
//	paid >= total       -> PAID (overpayment is capped at PAID)
//	not PAID && due<now -> OVERDUE
func DeriveStatus(paid, total decimal.Decimal, due, now time.Time) model.FeeStatus {
	var st model.FeeStatus
	switch {
	case !paid.IsPositive():
		st = model.FeeStatusPending
	case paid.LessThan(total):
		st = model.FeeStatusPartiallyPaid
	default:
		st = model.FeeStatusPaid
	}

	if st != model.FeeStatusPaid && due.Before(now) {
		return model.FeeStatusOverdue
	}
	return st
}

// IsOverpaid reports paid > total.
func IsOverpaid(paid, total decimal.Decimal) bool {
	return paid.GreaterThan(total)
}
