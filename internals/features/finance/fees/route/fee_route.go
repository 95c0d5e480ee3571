// file: internals/features/finance/fees/route/fee_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/constants"
	"smartedu_backend/internals/features/finance/fees/controller"
	authMiddleware "smartedu_backend/internals/middlewares/auth"
)

// Base: /api/v1/fees
func FeeRoutes(api fiber.Router, ctrl *controller.FeeController, authMw fiber.Handler) {
	fees := api.Group("/fees", authMw)

	fees.Get("/me", ctrl.GetMyFee)
	fees.Get("/", authMiddleware.RequireRight(constants.RightGetPayments), ctrl.ListFees)
	fees.Post("/", authMiddleware.RequireRight(constants.RightManageUsers), ctrl.CreateFee)
}
