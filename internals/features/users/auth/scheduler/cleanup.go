package scheduler

import (
	"context"
	"time"

	"smartedu_backend/internals/helpers/logger"
)

type BlacklistCleaner interface {
	CleanupBlacklist(ctx context.Context) (int64, error)
}

// StartBlacklistCleanupScheduler hapus token_blacklist yang sudah lewat exp,
// sekali di awal lalu tiap interval sampai ctx selesai.
func StartBlacklistCleanupScheduler(ctx context.Context, svc BlacklistCleaner, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	log := logger.WithComponent("blacklist-cleanup")

	run := func() {
		n, err := svc.CleanupBlacklist(ctx)
		if err != nil {
			log.WithError(err).Error("❌ Gagal hapus token kadaluarsa")
			return
		}
		if n > 0 {
			log.Infof("🧹 %d token kadaluarsa dihapus", n)
		}
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		run()
		for {
			select {
			case <-ctx.Done():
				log.Info("blacklist cleanup stopped")
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
