package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Model ===================== */

type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	PaymentUserID uuid.UUID `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentFeeID  uuid.UUID `gorm:"column:payment_fee_id;type:uuid;not null;index" json:"payment_fee_id"`

	// Nominal & mata uang
	PaymentAmount   decimal.Decimal `gorm:"column:payment_amount;type:numeric(14,2);not null" json:"payment_amount"`
	PaymentCurrency string          `gorm:"column:payment_currency;type:varchar(8);not null;default:'IDR'" json:"payment_currency"`

	// order_id di gateway; unik & tidak pernah berubah
	PaymentTransactionID string        `gorm:"column:payment_transaction_id;type:varchar(64);not null;uniqueIndex" json:"payment_transaction_id"`
	PaymentStatus        PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:'pending';index" json:"payment_status"`

	PaymentGatewayProvider PaymentGatewayProvider `gorm:"column:payment_gateway_provider;type:varchar(20)" json:"payment_gateway_provider,omitempty"`
	PaymentCheckoutURL     *string                `gorm:"column:payment_checkout_url" json:"payment_checkout_url,omitempty"`
	PaymentGatewayToken    *string                `gorm:"column:payment_gateway_token" json:"payment_gateway_token,omitempty"`

	PaymentDate *time.Time `gorm:"column:payment_date" json:"payment_date,omitempty"`

	// payload callback terakhir, disimpan apa adanya untuk audit
	PaymentGatewayResponse datatypes.JSONMap `gorm:"column:payment_gateway_response" json:"payment_gateway_response,omitempty"`

	PaymentMetadata PaymentMetadata `gorm:"embedded;embeddedPrefix:payment_meta_" json:"payment_metadata"`

	// Refund (hanya terisi setelah status=refunded)
	PaymentRefundAmount decimal.NullDecimal `gorm:"column:payment_refund_amount;type:numeric(14,2)" json:"payment_refund_amount,omitempty"`
	PaymentRefundReason *string             `gorm:"column:payment_refund_reason" json:"payment_refund_reason,omitempty"`
	PaymentRefundedAt   *time.Time          `gorm:"column:payment_refunded_at" json:"payment_refunded_at,omitempty"`

	CreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

type PaymentMetadata struct {
	IPAddress string `gorm:"column:ip_address;type:varchar(64)" json:"ip_address,omitempty"`
	UserAgent string `gorm:"column:user_agent" json:"user_agent,omitempty"`
	Attempts  int    `gorm:"column:attempts;not null;default:0" json:"attempts"`
}

type RefundData struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
	Date   time.Time       `json:"date"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}

/* ===================== Helpers ===================== */

func (p *Payment) IsOpen() bool { return p.PaymentStatus.Open() }

// Refund returns the refund record, or nil when the payment was never refunded.
func (p *Payment) Refund() *RefundData {
	if !p.PaymentRefundAmount.Valid {
		return nil
	}
	rd := &RefundData{Amount: p.PaymentRefundAmount.Decimal}
	if p.PaymentRefundReason != nil {
		rd.Reason = *p.PaymentRefundReason
	}
	if p.PaymentRefundedAt != nil {
		rd.Date = *p.PaymentRefundedAt
	}
	return rd
}
