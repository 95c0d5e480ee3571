package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

type RefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" validate:"required,max=255"`
}

func (r *RefundRequest) Normalize() { r.Reason = strings.TrimSpace(r.Reason) }

// MidtransNotification: field yang dibaca dari HTTP notification Midtrans.
// Payload lengkapnya tetap disimpan apa adanya.
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
}

// FromPayload reads the typed view out of the raw map.
func FromPayload(m map[string]any) MidtransNotification {
	get := func(k string) string {
		if v, ok := m[k].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}
	return MidtransNotification{
		OrderID:           get("order_id"),
		StatusCode:        get("status_code"),
		GrossAmount:       get("gross_amount"),
		SignatureKey:      get("signature_key"),
		TransactionStatus: get("transaction_status"),
		FraudStatus:       get("fraud_status"),
		TransactionID:     get("transaction_id"),
		PaymentType:       get("payment_type"),
	}
}
