// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartedu_backend/internals/constants"
	"smartedu_backend/internals/features/users/user/controller"
	authMiddleware "smartedu_backend/internals/middlewares/auth"
)

// Base: /api/v1/users (admin)
func UserRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, authMw fiber.Handler) {
	ctrl := controller.NewUserController(db, v)

	users := api.Group("/users", authMw)
	users.Post("/", authMiddleware.RequireRight(constants.RightManageUsers), ctrl.CreateUser)
	users.Get("/", authMiddleware.RequireRight(constants.RightGetUsers), ctrl.ListUsers)
	users.Get("/:id", authMiddleware.RequireRight(constants.RightGetUsers), ctrl.GetUser)
}
