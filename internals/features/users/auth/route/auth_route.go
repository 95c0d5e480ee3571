// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/features/users/auth/controller"
	rateLimiter "smartedu_backend/internals/middlewares"
)

// Base: /api/v1/auth
func AuthRoutes(api fiber.Router, ctrl *controller.AuthController, authMw fiber.Handler) {
	auth := api.Group("/auth")

	// 🔓 Public
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)

	// 🔐 Protected
	auth.Post("/logout", authMw, ctrl.Logout)
	auth.Get("/me", authMw, ctrl.Me)
}
