package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartedu_backend/internals/helpers/apperror"
)

// Ambil user_id dari c.Locals("user_id") (diisi AuthMiddleware)
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	var raw string
	switch t := c.Locals("user_id").(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, apperror.Unauthorized("User belum login")
		}
		return t, nil
	case string:
		raw = t
	case []byte:
		raw = string(t)
	case nil:
		return uuid.Nil, apperror.Unauthorized("User belum login")
	default:
		return uuid.Nil, apperror.Validation("User ID pada token tidak valid")
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, apperror.Unauthorized("User belum login")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation("User ID pada token tidak valid")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}

// ParseUUIDParam reads a uuid path param, 400 on bad input.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid " + name)
	}
	return id, nil
}
