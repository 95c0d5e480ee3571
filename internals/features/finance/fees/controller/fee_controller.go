// file: internals/features/finance/fees/controller/fee_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/constants"
	"smartedu_backend/internals/features/finance/fees/dto"
	"smartedu_backend/internals/features/finance/fees/service"
	helper "smartedu_backend/internals/helpers"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

type FeeController struct {
	Svc       *service.FeeService
	Validator *validator.Validate
}

func NewFeeController(svc *service.FeeService, v *validator.Validate) *FeeController {
	return &FeeController{Svc: svc, Validator: v}
}

/* =======================================================
   POST /api/v1/fees  (admin, tagihan satuan di luar charge)
   ======================================================= */
func (h *FeeController) CreateFee(c *fiber.Ctx) error {
	var req dto.CreateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.FromError(c, apperror.Validation("Invalid request body"))
	}
	req.Normalize()
	if err := h.Validator.Struct(req); err != nil {
		return helper.FromError(c, err)
	}

	fee := req.ToModel()
	if err := h.Svc.CreateFee(c.UserContext(), fee); err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Fee berhasil dibuat", fee)
}

/* =======================================================
   GET /api/v1/fees?status=&month=&academic_year=
   user biasa hanya melihat fee miliknya
   ======================================================= */
func (h *FeeController) ListFees(c *fiber.Ctx) error {
	base := paginate.Pick(c, "fee_status", "fee_month", "fee_academic_year", "fee_user_id")

	if helper.GetRoleFromToken(c) != constants.RoleAdmin {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromError(c, err)
		}
		base = paginate.AndOf(base, paginate.Eq{Field: "fee_user_id", Value: userID})
	}

	res, err := h.Svc.QueryFees(c.UserContext(), base, paginate.Parse(paginate.ParseFiber(c)))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Daftar fee", res)
}

/* =======================================================
   GET /api/v1/fees/me  → fee aktif (jatuh tempo paling awal, belum lunas)
   ======================================================= */
func (h *FeeController) GetMyFee(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	fee, err := h.Svc.GetFeeByUserID(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	if fee == nil {
		return helper.FromError(c, apperror.NotFound("Fee not found"))
	}
	return helper.Success(c, "Fee aktif", fee)
}
