// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	authRepo "smartedu_backend/internals/features/users/auth/repository"
	userModel "smartedu_backend/internals/features/users/user/model"
	helper "smartedu_backend/internals/helpers"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/logger"
)

// AuthMiddleware verifies the bearer JWT, rejects blacklisted tokens and
// inactive users, then stores user_id / userRole / user_name in Locals.
func AuthMiddleware(db *gorm.DB, secret string) fiber.Handler {
	blacklist := authRepo.NewAuthRepository(db, secret)

	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.FromError(c, apperror.Unauthorized(err.Error()))
		}

		// 2) Secret wajib ada
		if secret == "" {
			logger.WithContext(c.UserContext()).Error("❌ JWT_SECRET kosong")
			return helper.FromError(c, apperror.New(apperror.CodeInternal, "Missing JWT Secret", fiber.StatusInternalServerError))
		}

		// 3) Cek blacklist (sekali per request)
		if c.Locals("token_checked") == nil {
			listed, err := blacklist.IsBlacklisted(c.UserContext(), tokenString)
			if err != nil {
				return helper.FromError(c, err)
			}
			if listed {
				logger.WithContext(c.UserContext()).Warn("⚠️ Token ditemukan di blacklist")
				return helper.FromError(c, apperror.Unauthorized("Unauthorized - Token is blacklisted"))
			}
			c.Locals("token_checked", true)
		}

		// 4) Parse & verifikasi JWT (exp dicek manual dengan skew)
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}); err != nil {
			logger.WithContext(c.UserContext()).WithError(err).Debug("gagal parse token")
			return helper.FromError(c, apperror.Unauthorized("Unauthorized - Token parse error"))
		}

		// 5) Validasi exp
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return helper.FromError(c, apperror.Unauthorized("Unauthorized - Token expired"))
		}

		// 6) Ambil user_id & validasi user aktif
		userID, err := extractUserID(claims)
		if err != nil {
			return helper.FromError(c, apperror.Unauthorized("Unauthorized - Invalid or missing user ID"))
		}

		var user userModel.UserModel
		if err := db.WithContext(c.UserContext()).Select("id", "status").Where("id = ?", userID).Take(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.FromError(c, apperror.Unauthorized("Unauthorized - User not found"))
			}
			return helper.FromError(c, apperror.Store("load user failed", err))
		}
		if !user.IsActive() {
			return helper.FromError(c, apperror.Forbidden("Akun Anda telah dinonaktifkan"))
		}

		// 7) Simpan klaim ke Locals + user context (dipakai logger)
		c.Locals("user_id", userID.String())
		c.Locals("access_token", tokenString)
		storeBasicClaimsToLocals(c, claims)
		c.SetUserContext(context.WithValue(c.UserContext(), logger.UserIDKey, userID.String()))

		return c.Next()
	}
}
