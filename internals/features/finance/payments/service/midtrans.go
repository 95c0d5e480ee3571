package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"smartedu_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Midtrans Snap gateway
========================================================= */

type MidtransGateway struct {
	serverKey string
	env       midtrans.EnvironmentType
}

// NewMidtransGateway: useProduction=true untuk Production, false untuk Sandbox.
func NewMidtransGateway(serverKey string, useProduction bool) *MidtransGateway {
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	return &MidtransGateway{serverKey: serverKey, env: env}
}

type snapResult struct {
	resp *snap.Response
	err  *midtrans.Error
}

func (g *MidtransGateway) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResponse, error) {
	if g.serverKey == "" {
		return nil, errors.New("midtrans server key is not configured")
	}

	// client per request: options (override notification) tidak dibagi antar goroutine
	var client snap.Client
	client.New(g.serverKey, g.env)
	if req.IPNURL != "" {
		client.Options.SetPaymentOverrideNotification(req.IPNURL)
	}
	client.Options.SetPaymentIdempotencyKey(req.TransactionID)

	snapReq := buildSnapRequest(req)

	done := make(chan snapResult, 1)
	go func() {
		resp, err := client.CreateTransaction(snapReq)
		done <- snapResult{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		if r.resp == nil || r.resp.Token == "" || r.resp.RedirectURL == "" {
			reason := "empty snap response"
			if r.resp != nil && len(r.resp.ErrorMessages) > 0 {
				reason = strings.Join(r.resp.ErrorMessages, "; ")
			}
			return &InitiateResponse{Status: InitiateStatusFailed, FailedReason: reason}, nil
		}
		return &InitiateResponse{
			Status:      InitiateStatusSuccess,
			Token:       r.resp.Token,
			RedirectURL: r.resp.RedirectURL,
		}, nil
	}
}

func buildSnapRequest(req InitiateRequest) *snap.Request {
	first, last := splitName(req.Buyer.Name)
	gross := req.Amount.Round(0).IntPart()

	addr := &midtrans.CustomerAddress{
		FName:       first,
		LName:       last,
		Phone:       req.Buyer.Phone,
		Address:     req.Buyer.Address,
		CountryCode: "IDN",
	}

	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.TransactionID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName:    first,
			LName:    last,
			Email:    req.Buyer.Email,
			Phone:    req.Buyer.Phone,
			BillAddr: addr,
			ShipAddr: addr,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:       req.TransactionID,
			Price:    gross,
			Qty:      1,
			Name:     truncate(req.ProductName, 50),
			Category: "School Fee",
		}},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Callbacks:  &snap.Callbacks{Finish: req.SuccessURL},
		// dibaca balik di notifikasi untuk rekonsiliasi
		CustomField1: req.UserID.String(),
		CustomField2: req.FeeID.String(),
	}
}

/* =========================================================
   Notification helpers
========================================================= */

// MidtransSignature = sha512(order_id + status_code + gross_amount + server_key)
func MidtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func VerifyMidtransSignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	if serverKey == "" || signature == "" {
		return false
	}
	want := MidtransSignature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(strings.TrimSpace(signature)))) == 1
}

// MapMidtransStatus turns a notification into a resolve outcome. ok=false
// means the notification carries no final outcome and should be ignored.
func MapMidtransStatus(transactionStatus, fraudStatus string) (outcome model.PaymentStatus, ok bool) {
	switch strings.ToLower(strings.TrimSpace(transactionStatus)) {
	case "settlement":
		return model.PaymentStatusSuccess, true
	case "capture":
		switch strings.ToLower(strings.TrimSpace(fraudStatus)) {
		case "accept":
			return model.PaymentStatusSuccess, true
		case "challenge":
			return "", false
		}
		return model.PaymentStatusFailed, true
	case "deny", "cancel", "expire", "failure":
		return model.PaymentStatusFailed, true
	}
	// pending, authorize, refund, partial_refund, ...
	return "", false
}

/* =========================================================
   Utils
========================================================= */

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
