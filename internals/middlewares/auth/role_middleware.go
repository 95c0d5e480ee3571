package auth

import (
	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/constants"
	helper "smartedu_backend/internals/helpers"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/logger"
)

// RequireRight lolos kalau role di token punya right tsb (lihat constants.RoleRights)
func RequireRight(right string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok || role == "" {
			return helper.FromError(c, apperror.Unauthorized("Unauthorized: missing role information"))
		}
		if !constants.HasRight(role, right) {
			logger.WithContext(c.UserContext()).
				WithField("role", role).
				WithField("right", right).
				Debug("akses ditolak")
			return helper.FromError(c, apperror.Forbidden(constants.RightError(right)))
		}
		return c.Next()
	}
}

// OnlyRoles: shortcut kalau yang dicek role, bukan right
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	msg := customMessage
	if msg == "" {
		msg = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return helper.FromError(c, apperror.Unauthorized("Unauthorized - Role not found"))
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return helper.FromError(c, apperror.Forbidden(msg))
	}
}
