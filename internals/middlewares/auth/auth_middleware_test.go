package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartedu_backend/internals/constants"
	"smartedu_backend/internals/databases/dbtest"
	authModel "smartedu_backend/internals/features/users/auth/model"
	authRepo "smartedu_backend/internals/features/users/auth/repository"
	userModel "smartedu_backend/internals/features/users/user/model"
)

const secret = "middleware-secret"

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func setup(t *testing.T) (*fiber.App, *userModel.UserModel, *authRepo.AuthRepository) {
	t.Helper()
	db := dbtest.Open(t, &userModel.UserModel{}, &authModel.TokenBlacklist{})
	u := &userModel.UserModel{UserName: "Siti", Email: "siti@school.id", Password: "x", Role: constants.RoleUser}
	require.NoError(t, db.Create(u).Error)

	app := fiber.New()
	app.Get("/me", AuthMiddleware(db, secret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string) + "|" + c.Locals("userRole").(string))
	})
	app.Get("/admin", AuthMiddleware(db, secret), RequireRight(constants.RightGetUsers), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, u, authRepo.NewAuthRepository(db, secret)
}

func claimsFor(id uuid.UUID, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{"id": id.String(), "role": constants.RoleUser, "exp": exp.Unix()}
}

func do(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	app, u, repo := setup(t)
	valid := sign(t, claimsFor(u.ID, time.Now().Add(time.Hour)))

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"no token", "/me", "", fiber.StatusUnauthorized},
		{"garbage", "/me", "not.a.jwt", fiber.StatusUnauthorized},
		{"expired", "/me", sign(t, claimsFor(u.ID, time.Now().Add(-time.Hour))), fiber.StatusUnauthorized},
		{"unknown user", "/me", sign(t, claimsFor(uuid.New(), time.Now().Add(time.Hour))), fiber.StatusUnauthorized},
		{"valid", "/me", valid, fiber.StatusOK},
		{"missing right", "/admin", valid, fiber.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, do(t, app, tc.path, tc.token))
		})
	}

	require.NoError(t, repo.BlacklistToken(context.Background(), valid, time.Now().Add(time.Hour)))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "/me", valid))
}

func TestExtractBearerToken_Cookie(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		tok, err := ExtractBearerToken(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(tok)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("Cookie", "access_token=abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
