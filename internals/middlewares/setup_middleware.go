package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/utils"

	"smartedu_backend/internals/configs"
	"smartedu_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware global; urutan penting:
// request id dulu supaya logger & service bisa baca.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(requestid.New(requestid.Config{Generator: utils.UUID}))
	app.Use(RequestContext())
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.Payment.ClientURL))
	app.Use(MetricsMiddleware())
	app.Use(GlobalRateLimiter())
}
