// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/constants"
	"smartedu_backend/internals/features/finance/payments/dto"
	svc "smartedu_backend/internals/features/finance/payments/service"
	helper "smartedu_backend/internals/helpers"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

/* =======================================================================
   Controller
======================================================================= */

type PaymentController struct {
	Svc       *svc.PaymentService
	Validator *validator.Validate
}

func NewPaymentController(s *svc.PaymentService, v *validator.Validate) *PaymentController {
	return &PaymentController{Svc: s, Validator: v}
}

func requestMeta(c *fiber.Ctx) svc.RequestMetadata {
	return svc.RequestMetadata{IPAddress: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)}
}

func isAdmin(c *fiber.Ctx) bool { return helper.GetRoleFromToken(c) == constants.RoleAdmin }

/* =======================================================================
   Handlers
======================================================================= */

// POST /api/v1/payments → buka sesi checkout untuk fee aktif user login
func (h *PaymentController) CreatePayment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	res, err := h.Svc.Create(c.UserContext(), userID, requestMeta(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Payment dibuat, lanjutkan ke halaman pembayaran", res)
}

// GET /api/v1/payments?payment_status=&page=&limit=&sortBy=
func (h *PaymentController) ListPayments(c *fiber.Ctx) error {
	base := paginate.Pick(c, "payment_status", "payment_user_id", "payment_fee_id")
	if !isAdmin(c) {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromError(c, err)
		}
		base = paginate.AndOf(base, paginate.Eq{Field: "payment_user_id", Value: userID})
	}

	res, err := h.Svc.QueryPayments(c.UserContext(), base, paginate.Parse(paginate.ParseFiber(c)))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Daftar payment", res)
}

// GET /api/v1/payments/:transactionId
func (h *PaymentController) GetPayment(c *fiber.Ctx) error {
	p, err := h.Svc.GetByTransactionID(c.UserContext(), c.Params("transactionId"))
	if err != nil {
		return helper.FromError(c, err)
	}
	if !isAdmin(c) {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromError(c, err)
		}
		// payment milik user lain diperlakukan seperti tidak ada
		if p.PaymentUserID != userID {
			return helper.FromError(c, apperror.NotFound("Payment not found"))
		}
	}
	return helper.Success(c, "Detail payment", p)
}

// POST /api/v1/payments/:transactionId/refund (admin)
func (h *PaymentController) RefundPayment(c *fiber.Ctx) error {
	var req dto.RefundRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.FromError(c, apperror.Validation("Invalid request body"))
	}
	req.Normalize()
	if err := h.Validator.Struct(req); err != nil {
		return helper.FromError(c, err)
	}

	p, err := h.Svc.Refund(c.UserContext(), c.Params("transactionId"), req.Amount, req.Reason)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Payment di-refund", p)
}

// GET /api/v1/payments/:transactionId/download/receipt (public)
func (h *PaymentController) DownloadReceipt(c *fiber.Ctx) error {
	doc, err := h.Svc.Receipt(c.UserContext(), c.Params("transactionId"))
	if err != nil {
		return helper.FromError(c, err)
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+doc.Filename)
	return c.SendStream(doc.Body)
}

// isRedirectType: success, failed dan cancel dari Snap redirect
func isRedirectType(t string) bool {
	switch t {
	case "success", "failed", "cancel":
		return true
	}
	return false
}
