// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/constants"
	"smartedu_backend/internals/features/finance/payments/controller"
	"smartedu_backend/internals/middlewares"
	authMiddleware "smartedu_backend/internals/middlewares/auth"
)

// Base: /api/v1/payments
func PaymentRoutes(api fiber.Router, pc *controller.PaymentController, cc *controller.CallbackController, authMw fiber.Handler) {
	payments := api.Group("/payments")

	// 🔓 Public: dipanggil gateway / browser user setelah checkout
	payments.Post("/notification", middlewares.CallbackRateLimiter(), cc.Notification)
	payments.Get("/:transactionId/download/receipt", pc.DownloadReceipt)

	// 🔐 Protected
	payments.Post("/", authMw, authMiddleware.RequireRight(constants.RightManagePayments), pc.CreatePayment)
	payments.Get("/", authMw, authMiddleware.RequireRight(constants.RightGetPayments), pc.ListPayments)
	payments.Get("/:transactionId", authMw, authMiddleware.RequireRight(constants.RightGetPayments), pc.GetPayment)
	payments.Post("/:transactionId/refund",
		authMw,
		authMiddleware.RequireRight(constants.RightManagePayments),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("refund"), constants.RoleAdmin),
		pc.RefundPayment,
	)

	// 🔓 Public redirect callback; didaftarkan terakhir karena :type menangkap segmen apa saja
	payments.Post("/:transactionId/:type", middlewares.CallbackRateLimiter(), cc.GatewayRedirect)
	payments.Get("/:transactionId/:type", middlewares.CallbackRateLimiter(), cc.GatewayRedirect)
}
