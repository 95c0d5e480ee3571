// file: internals/features/finance/charges/route/charge_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/constants"
	"smartedu_backend/internals/features/finance/charges/controller"
	authMiddleware "smartedu_backend/internals/middlewares/auth"
)

// Base: /api/v1/charges (admin)
func ChargeRoutes(api fiber.Router, ctrl *controller.ChargeController, authMw fiber.Handler) {
	charges := api.Group("/charges", authMw)

	charges.Post("/", authMiddleware.RequireRight(constants.RightManageUsers), ctrl.CreateCharge)
	charges.Get("/", authMiddleware.RequireRight(constants.RightGetUsers), ctrl.GetCharges)
	charges.Post("/:id/issue", authMiddleware.RequireRight(constants.RightManageUsers), ctrl.IssueCharge)
}
