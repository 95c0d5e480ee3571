// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartedu_backend/internals/features/users/user/dto"
	"smartedu_backend/internals/features/users/user/repository"
	"smartedu_backend/internals/features/users/user/service"
	helper "smartedu_backend/internals/helpers"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/paginate"
)

type UserController struct {
	Svc *service.UserService
}

func NewUserController(db *gorm.DB, v *validator.Validate) *UserController {
	return &UserController{Svc: service.NewUserService(repository.NewUserRepository(db), v)}
}

/* =======================================================
   POST /api/v1/users
   ======================================================= */
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.FromError(c, apperror.Validation("Invalid request body"))
	}

	u, err := uc.Svc.CreateUser(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "User berhasil dibuat", u)
}

/* =======================================================
   GET /api/v1/users?search=&role=&class=&page=&limit=
   ======================================================= */
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	raw := paginate.DefaultSearch(paginate.ParseFiber(c), service.SearchFields...)
	base := paginate.Pick(c, "role", "class", "section", "status")

	res, err := uc.Svc.QueryUsers(c.UserContext(), base, paginate.Parse(raw))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Daftar user", res)
}

/* =======================================================
   GET /api/v1/users/:id
   ======================================================= */
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	u, err := uc.Svc.GetUserByID(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	if u == nil {
		return helper.FromError(c, apperror.NotFound("User not found"))
	}
	return helper.Success(c, "Detail user", u)
}
