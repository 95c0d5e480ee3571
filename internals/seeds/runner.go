package seeds

import (
	"context"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	database "smartedu_backend/internals/databases"
	chargeRepo "smartedu_backend/internals/features/finance/charges/repository"
	chargeService "smartedu_backend/internals/features/finance/charges/service"
	feeRepo "smartedu_backend/internals/features/finance/fees/repository"
	feeService "smartedu_backend/internals/features/finance/fees/service"
	userRepo "smartedu_backend/internals/features/users/user/repository"
	userService "smartedu_backend/internals/features/users/user/service"
	"smartedu_backend/internals/helpers/logger"
	"smartedu_backend/internals/seeds/charges"
	"smartedu_backend/internals/seeds/users"
)

// DefaultDir is where the JSON seed files live, relative to the repo root.
const DefaultDir = "internals/seeds"

// RunAllSeeds: user dulu, lalu charge (butuh user untuk diterbitkan).
func RunAllSeeds(ctx context.Context, db *gorm.DB, dir string) error {
	if dir == "" {
		dir = DefaultDir
	}
	v := validator.New()
	tx := database.NewTransactor(db)
	uRepo := userRepo.NewUserRepository(db)
	uSvc := userService.NewUserService(uRepo, v)

	//* User
	n, err := users.SeedUsersFromJSON(ctx, uSvc, filepath.Join(dir, "users", "data_users.json"))
	if err != nil {
		return err
	}
	logger.Infof("🌱 %d user dibuat", n)

	//* Charges → fees
	fees := feeService.NewFeeService(feeRepo.NewFeeRepository(db), tx)
	cSvc := chargeService.NewChargeService(chargeRepo.NewChargeRepository(db), fees, uSvc, tx, v)
	n, err = charges.SeedChargesFromJSON(ctx, db, cSvc, uRepo, filepath.Join(dir, "charges", "data_charges.json"))
	if err != nil {
		return err
	}
	logger.Infof("🌱 %d fee diterbitkan", n)
	return nil
}
