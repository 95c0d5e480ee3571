// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartedu_backend/internals/configs"
	"smartedu_backend/internals/helpers/logger"
	authMiddleware "smartedu_backend/internals/middlewares/auth"
	routeDetails "smartedu_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts every feature under /api/v1.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	startTime = time.Now()
	log := logger.WithComponent("routes")

	BaseRoutes(app, db)

	v := validator.New()
	authMw := authMiddleware.AuthMiddleware(db, cfg.JWT.Secret)
	api := app.Group("/api/v1")

	// ===================== AUTH / USER =====================
	log.Info("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, db, cfg, v, authMw)

	log.Info("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(api, db, v, authMw)

	// ===================== FINANCE =====================
	log.Info("[INFO] Mounting Finance routes...")
	routeDetails.FinanceRoutes(api, db, cfg, v, authMw)
}
