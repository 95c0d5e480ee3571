package users

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"smartedu_backend/internals/features/users/user/dto"
	"smartedu_backend/internals/features/users/user/service"
	"smartedu_backend/internals/helpers/apperror"
	"smartedu_backend/internals/helpers/logger"
)

// SeedUsersFromJSON membuat user dari file JSON. Email yang sudah ada dilewati.
func SeedUsersFromJSON(ctx context.Context, svc *service.UserService, filePath string) (int, error) {
	log := logger.WithComponent("seed-users")
	log.Info("📥 Membaca file user: ", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}

	var inputs []dto.CreateUserRequest
	if err := json.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	created := 0
	for _, data := range inputs {
		u, err := svc.CreateUser(ctx, data)
		switch {
		case apperror.Is(err, apperror.CodeConflict):
			log.Infof("ℹ️ User dengan email '%s' sudah ada, dilewati.", data.Email)
		case err != nil:
			return created, fmt.Errorf("seed user %s: %w", data.Email, err)
		default:
			created++
			log.Infof("✅ Berhasil insert user '%s'", u.Email)
		}
	}
	return created, nil
}
