package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	authRepo "smartedu_backend/internals/features/users/auth/repository"
	userModel "smartedu_backend/internals/features/users/user/model"
	userRepo "smartedu_backend/internals/features/users/user/repository"
	userService "smartedu_backend/internals/features/users/user/service"
	"smartedu_backend/internals/helpers/apperror"
)

type LoginResult struct {
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        *userModel.UserModel `json:"user"`
}

type AuthService struct {
	users  *userRepo.UserRepository
	repo   *authRepo.AuthRepository
	tokens *TokenIssuer
}

func NewAuthService(users *userRepo.UserRepository, repo *authRepo.AuthRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{users: users, repo: repo, tokens: tokens}
}

/* ==========================
   LOGIN (email + password)
========================== */

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.Validation("Email dan password wajib diisi")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !userService.CheckPassword(u, password) {
		return nil, apperror.Unauthorized("Email atau Password salah")
	}
	if !u.IsActive() {
		return nil, apperror.Forbidden("Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	tok, exp, err := s.tokens.Issue(*u)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "Gagal membuat token", fiber.StatusInternalServerError, err)
	}
	return &LoginResult{AccessToken: tok, ExpiresAt: exp, User: u}, nil
}

/* ==========================
   LOGOUT
========================== */

// Logout blacklists the access token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	exp := s.tokens.ExpiryOf(accessToken)
	if exp.IsZero() {
		exp = s.tokens.Now().Add(2 * time.Minute)
	}
	return s.repo.BlacklistToken(ctx, accessToken, exp.Add(time.Minute))
}

func (s *AuthService) CleanupBlacklist(ctx context.Context) (int64, error) {
	return s.repo.CleanupExpiredBlacklist(ctx, s.tokens.Now())
}
