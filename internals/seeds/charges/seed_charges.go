package charges

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartedu_backend/internals/features/finance/charges/dto"
	"smartedu_backend/internals/features/finance/charges/model"
	"smartedu_backend/internals/features/finance/charges/service"
	userRepo "smartedu_backend/internals/features/users/user/repository"
	"smartedu_backend/internals/helpers/logger"
)

type ChargeSeed struct {
	dto.CreateChargeRequest
	// email siswa yang langsung ditagih
	IssueTo []string `json:"issue_to"`
}

// SeedChargesFromJSON membuat template charge lalu menerbitkan fee ke siswa
// di issue_to. Charge dengan tahun ajaran + bulan yang sama dilewati.
func SeedChargesFromJSON(ctx context.Context, db *gorm.DB, svc *service.ChargeService, users *userRepo.UserRepository, filePath string) (int, error) {
	log := logger.WithComponent("seed-charges")
	log.Info("📥 Membaca file charge: ", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []ChargeSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	issued := 0
	for _, data := range inputs {
		var n int64
		if err := db.WithContext(ctx).Model(&model.Charge{}).
			Where("charge_academic_year = ? AND charge_month = ?", data.AcademicYear, data.Month).
			Count(&n).Error; err != nil {
			return issued, fmt.Errorf("check charge: %w", err)
		}
		if n > 0 {
			log.Infof("ℹ️ Charge %s %s sudah ada, dilewati.", data.Month, data.AcademicYear)
			continue
		}

		ch, err := svc.CreateCharge(ctx, data.CreateChargeRequest, nil)
		if err != nil {
			return issued, fmt.Errorf("seed charge %s %s: %w", data.Month, data.AcademicYear, err)
		}

		ids := make([]uuid.UUID, 0, len(data.IssueTo))
		for _, email := range data.IssueTo {
			u, err := users.FindByEmail(ctx, email)
			if err != nil {
				return issued, err
			}
			if u == nil {
				log.Warnf("⚠️ User '%s' tidak ditemukan, tidak ditagih", email)
				continue
			}
			ids = append(ids, u.ID)
		}
		if len(ids) == 0 {
			continue
		}

		res, err := svc.IssueCharge(ctx, ch.ChargeID, dto.IssueChargeRequest{UserIDs: ids})
		if err != nil {
			return issued, fmt.Errorf("issue charge %s: %w", ch.ChargeID, err)
		}
		issued += res.Issued
		log.Infof("✅ Charge %s %s diterbitkan ke %d siswa", ch.ChargeMonth, ch.ChargeAcademicYear, res.Issued)
	}
	return issued, nil
}
