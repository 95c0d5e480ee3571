package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "smartedu_backend/internals/features/users/user/route"
)

func UserRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, authMw fiber.Handler) {
	userRoute.UserRoutes(api, db, v, authMw)
}
