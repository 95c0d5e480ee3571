// file: internals/features/finance/charges/controller/charge_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartedu_backend/internals/features/finance/charges/dto"
	"smartedu_backend/internals/features/finance/charges/service"
	helper "smartedu_backend/internals/helpers"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

type ChargeController struct {
	Svc *service.ChargeService
}

func NewChargeController(svc *service.ChargeService) *ChargeController {
	return &ChargeController{Svc: svc}
}

// POST /api/v1/charges
func (h *ChargeController) CreateCharge(c *fiber.Ctx) error {
	var req dto.CreateChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.FromError(c, apperror.Validation("Invalid request body"))
	}

	var createdBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		createdBy = &uid
	}

	ch, err := h.Svc.CreateCharge(c.UserContext(), req, createdBy)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Charge berhasil dibuat", ch)
}

// GET /api/v1/charges            → charge terbaru
// GET /api/v1/charges?all=true   → list paginated
func (h *ChargeController) GetCharges(c *fiber.Ctx) error {
	if c.QueryBool("all") {
		res, err := h.Svc.QueryCharges(c.UserContext(), paginate.Parse(paginate.ParseFiber(c)))
		if err != nil {
			return helper.FromError(c, err)
		}
		return helper.Success(c, "Daftar charge", res)
	}

	ch, err := h.Svc.GetCharge(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Charge terbaru", ch)
}

// POST /api/v1/charges/:id/issue
func (h *ChargeController) IssueCharge(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.IssueChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.FromError(c, apperror.Validation("Invalid request body"))
	}

	res, err := h.Svc.IssueCharge(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Tagihan berhasil diterbitkan", res)
}
