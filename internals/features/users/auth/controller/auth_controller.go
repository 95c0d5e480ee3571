package controller

import (
	"github.com/gofiber/fiber/v2"

	"smartedu_backend/internals/features/users/auth/service"
	userService "smartedu_backend/internals/features/users/user/service"
	helper "smartedu_backend/internals/helpers"
	"smartedu_backend/internals/helpers/apperror"
	authMiddleware "smartedu_backend/internals/middlewares/auth"
)

type AuthController struct {
	Auth  *service.AuthService
	Users *userService.UserService
}

func NewAuthController(auth *service.AuthService, users *userService.UserService) *AuthController {
	return &AuthController{Auth: auth, Users: users}
}

// POST /api/v1/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.FromError(c, apperror.Validation("Invalid input format"))
	}

	res, err := ac.Auth.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Login berhasil", res)
}

// POST /api/v1/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	tok, _ := authMiddleware.ExtractBearerToken(c)
	if err := ac.Auth.Logout(c.UserContext(), tok); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Logout successful", nil)
}

// GET /api/v1/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	u, err := ac.Users.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return helper.FromError(c, err)
	}
	if u == nil {
		return helper.FromError(c, apperror.NotFound("User not found"))
	}
	return helper.Success(c, "Data user", u)
}
