package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartedu_backend/internals/configs"
	authController "smartedu_backend/internals/features/users/auth/controller"
	authRepo "smartedu_backend/internals/features/users/auth/repository"
	authRoute "smartedu_backend/internals/features/users/auth/route"
	authService "smartedu_backend/internals/features/users/auth/service"
	userRepo "smartedu_backend/internals/features/users/user/repository"
	userService "smartedu_backend/internals/features/users/user/service"
)

func AuthRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config, v *validator.Validate, authMw fiber.Handler) {
	users := userRepo.NewUserRepository(db)
	svc := authService.NewAuthService(users, authRepo.NewAuthRepository(db, cfg.JWT.Secret), authService.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL))

	authRoute.AuthRoutes(api, authController.NewAuthController(svc, userService.NewUserService(users, v)), authMw)
}
