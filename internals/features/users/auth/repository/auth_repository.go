package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gorm.io/gorm"

	"smartedu_backend/internals/features/users/auth/model"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/helpers/apperror"
)

// AuthRepository never stores raw access tokens: the blacklist keeps
// HMAC-SHA256(token, secret) so a leaked table cannot be replayed.
type AuthRepository struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthRepository(db *gorm.DB, secret string) *AuthRepository {
	return &AuthRepository{db: db, secret: []byte(secret)}
}

func (r *AuthRepository) digest(token string) string {
	m := hmac.New(sha256.New, r.secret)
	_, _ = m.Write([]byte(token))
	return hex.EncodeToString(m.Sum(nil))
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken is idempotent: a token logged out twice is not an error.
func (r *AuthRepository) BlacklistToken(ctx context.Context, token string, expiredAt time.Time) error {
	err := database.Conn(ctx, r.db).Create(&model.TokenBlacklist{
		Token:     r.digest(token),
		ExpiredAt: expiredAt.UTC(),
	}).Error
	if err != nil && !database.IsUniqueViolation(err) {
		return apperror.Store("blacklist token failed", err)
	}
	return nil
}

func (r *AuthRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var n int64
	if err := database.Conn(ctx, r.db).
		Model(&model.TokenBlacklist{}).
		Where("token = ?", r.digest(token)).
		Count(&n).Error; err != nil {
		return false, apperror.Store("check blacklist failed", err)
	}
	return n > 0, nil
}

func (r *AuthRepository) CleanupExpiredBlacklist(ctx context.Context, now time.Time) (int64, error) {
	res := database.Conn(ctx, r.db).
		Where("expired_at <= ?", now.UTC()).
		Delete(&model.TokenBlacklist{})
	if res.Error != nil {
		return 0, apperror.Store("cleanup blacklist failed", res.Error)
	}
	return res.RowsAffected, nil
}
