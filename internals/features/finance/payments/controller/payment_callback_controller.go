// file: internals/features/finance/payments/controller/payment_callback_controller.go
package controller

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"smartedu_backend/internals/features/finance/payments/dto"
	"smartedu_backend/internals/features/finance/payments/model"
	"smartedu_backend/internals/features/finance/payments/repository"
	svc "smartedu_backend/internals/features/finance/payments/service"
	helper "smartedu_backend/internals/helpers"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/logger"
)

/* =======================================================================
   Callback gateway: redirect browser + HTTP notification Midtrans.
   Setiap callback dicatat di payment_gateway_events.
======================================================================= */

type CallbackController struct {
	Svc       *svc.PaymentService
	Events    *repository.GatewayEventRepository
	ServerKey string
	ClientURL string
}

func NewCallbackController(s *svc.PaymentService, events *repository.GatewayEventRepository, serverKey, clientURL string) *CallbackController {
	return &CallbackController{
		Svc:       s,
		Events:    events,
		ServerKey: serverKey,
		ClientURL: strings.TrimRight(clientURL, "/"),
	}
}

// POST|GET /api/v1/payments/:transactionId/:type  (success | failed | cancel)
//
// Browser redirect dari Snap. Tidak bertanda tangan dan bisa dipanggil siapa
// saja, jadi hanya dicatat lalu diarahkan ke client. Status payment hanya
// berubah lewat Notification yang signature-nya valid.
func (h *CallbackController) GatewayRedirect(c *fiber.Ctx) error {
	txID := c.Params("transactionId")
	typ := strings.ToLower(c.Params("type"))

	if !isRedirectType(typ) {
		return helper.FromError(c, apperror.Validation("unknown callback type "+typ))
	}

	payload := callbackPayload(c)
	ev := h.logEvent(c, txID, typ, payload, "")

	p, err := h.Svc.GetByTransactionID(c.UserContext(), txID)
	if err != nil {
		h.finishEvent(c, ev, nil, model.GatewayEventStatusFailed, err.Error())
		return helper.FromError(c, err)
	}
	h.finishEvent(c, ev, &p.PaymentID, model.GatewayEventStatusIgnored, "")

	return c.Redirect(h.ClientURL+"/site/payment/"+url.PathEscape(txID)+"/"+typ, fiber.StatusSeeOther)
}

// POST /api/v1/payments/notification (Midtrans HTTP notification, signed)
func (h *CallbackController) Notification(c *fiber.Ctx) error {
	var payload svc.GatewayPayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil || payload == nil {
		return helper.FromError(c, apperror.Validation("invalid notification body"))
	}
	n := dto.FromPayload(payload)
	if n.OrderID == "" {
		return helper.FromError(c, apperror.Validation("order_id is required"))
	}

	ev := h.logEvent(c, n.OrderID, n.TransactionStatus, payload, n.SignatureKey)

	// 1) signature
	if !svc.VerifyMidtransSignature(n.OrderID, n.StatusCode, n.GrossAmount, h.ServerKey, n.SignatureKey) {
		h.finishEvent(c, ev, nil, model.GatewayEventStatusFailed, "invalid signature")
		return helper.FromError(c, apperror.Unauthorized("invalid signature"))
	}

	// 2) status midtrans → outcome
	outcome, final := svc.MapMidtransStatus(n.TransactionStatus, n.FraudStatus)
	if !final {
		h.finishEvent(c, ev, nil, model.GatewayEventStatusIgnored, "")
		return helper.Success(c, "Notification ignored", fiber.Map{
			"transaction_status": n.TransactionStatus,
			"fraud_status":       n.FraudStatus,
		})
	}

	// 3) resolve
	p, err := h.Svc.Resolve(c.UserContext(), n.OrderID, outcome, payload, requestMeta(c))
	if err != nil {
		h.finishEvent(c, ev, nil, model.GatewayEventStatusFailed, err.Error())
		return helper.FromError(c, err)
	}
	h.finishEvent(c, ev, &p.PaymentID, model.GatewayEventStatusProcessed, "")

	return helper.Success(c, "Notification processed", fiber.Map{
		"payment_id":         p.PaymentID,
		"payment_status":     p.PaymentStatus,
		"transaction_status": n.TransactionStatus,
	})
}

/* =======================================================================
   Helpers
======================================================================= */

// callbackPayload: form / JSON body, atau query string untuk redirect GET
func callbackPayload(c *fiber.Ctx) svc.GatewayPayload {
	out := svc.GatewayPayload{}
	if c.Method() == fiber.MethodPost && len(c.Body()) > 0 {
		if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
			_ = json.Unmarshal(c.Body(), &out)
		} else {
			c.Request().PostArgs().VisitAll(func(k, v []byte) {
				out[string(k)] = string(v)
			})
		}
	}
	for k, v := range c.Queries() {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

func (h *CallbackController) logEvent(c *fiber.Ctx, txID, typ string, payload svc.GatewayPayload, signature string) *model.PaymentGatewayEvent {
	if h.Events == nil {
		return nil
	}
	headers := datatypes.JSONMap{}
	for k, v := range c.GetReqHeaders() {
		headers[k] = strings.Join(v, ",")
	}
	ev := &model.PaymentGatewayEvent{
		GatewayEventTransactionID: txID,
		GatewayEventProvider:      model.GatewayProviderMidtrans,
		GatewayEventType:          typ,
		GatewayEventHeaders:       headers,
		GatewayEventPayload:       datatypes.JSONMap(payload),
		GatewayEventStatus:        model.GatewayEventStatusReceived,
	}
	if ref := dto.FromPayload(payload).TransactionID; ref != "" {
		ev.GatewayEventExternalRef = &ref
	}
	if signature != "" {
		ev.GatewayEventSignature = &signature
	}
	// log gagal tidak boleh menggagalkan callback
	if err := h.Events.Create(c.UserContext(), ev); err != nil {
		logger.WithContext(c.UserContext()).WithError(err).Warn("⚠️ gateway event not logged")
		return nil
	}
	return ev
}

func (h *CallbackController) finishEvent(c *fiber.Ctx, ev *model.PaymentGatewayEvent, paymentID *uuid.UUID, status model.GatewayEventStatus, errMsg string) {
	if ev == nil {
		return
	}
	if err := h.Events.Finish(c.UserContext(), ev.GatewayEventID, paymentID, status, errMsg); err != nil {
		logger.WithContext(c.UserContext()).WithError(err).Warn("⚠️ gateway event status not updated")
	}
}
