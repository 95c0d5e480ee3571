package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuyerProfile is what the hosted checkout page shows / pre-fills.
type BuyerProfile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type InitiateRequest struct {
	TransactionID string
	Amount        decimal.Decimal
	Currency      string

	SuccessURL string
	FailURL    string
	CancelURL  string
	IPNURL     string

	Buyer       BuyerProfile
	ProductName string

	// dikembalikan gateway apa adanya di callback
	UserID uuid.UUID
	FeeID  uuid.UUID
}

type InitiateResponse struct {
	Status       string
	Token        string
	RedirectURL  string
	FailedReason string
}

const (
	InitiateStatusSuccess = "SUCCESS"
	InitiateStatusFailed  = "FAILED"
)

func (r *InitiateResponse) Succeeded() bool {
	return r != nil && r.Status == InitiateStatusSuccess && r.RedirectURL != ""
}

// Gateway opens a hosted checkout session. Implementations must honour ctx
// cancellation.
type Gateway interface {
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResponse, error)
}
