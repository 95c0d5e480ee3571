package scheduler

import (
	"context"
	"time"

	"smartedu_backend/internals/helpers/logger"
)

type OverdueSweeper interface {
	SweepOverdue(ctx context.Context) (int64, error)
}

// StartOverdueScheduler runs the sweep once right away, then every interval,
// until ctx is cancelled.
func StartOverdueScheduler(ctx context.Context, svc OverdueSweeper, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	log := logger.WithComponent("fee-overdue-scheduler")

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			log.Debug("[OVERDUE] Menjalankan sweep tagihan jatuh tempo...")
			n, err := svc.SweepOverdue(ctx)
			switch {
			case err != nil:
				log.WithError(err).Error("[OVERDUE] sweep gagal")
			case n > 0:
				log.Infof("[OVERDUE] %d tagihan ditandai OVERDUE", n)
			}

			select {
			case <-ctx.Done():
				log.Info("[OVERDUE] scheduler berhenti")
				return
			case <-ticker.C:
			}
		}
	}()
}
