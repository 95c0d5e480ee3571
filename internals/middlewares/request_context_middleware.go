package middlewares

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"smartedu_backend/internals/helpers/logger"
)

// RequestContext menaruh request id ke user context supaya ikut di log service
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && rid != "" {
			c.SetUserContext(context.WithValue(c.UserContext(), logger.RequestIDKey, rid))
		}
		return c.Next()
	}
}
