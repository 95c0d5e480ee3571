package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"smartedu_backend/internals/configs"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/features"
	feeRepo "smartedu_backend/internals/features/finance/fees/repository"
	feeService "smartedu_backend/internals/features/finance/fees/service"
	"smartedu_backend/internals/helpers/logger"
	"smartedu_backend/internals/seeds"
)

var sqlitePath string

func openDB() (*gorm.DB, error) {
	configs.LoadEnv()
	cfg := configs.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if sqlitePath != "" {
		return database.ConnectSQLite(sqlitePath, cfg.Log.Level)
	}
	return database.ConnectDB(cfg.Database, cfg.Log.Level)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// signalContext cancels on Ctrl-C so long statements are abandoned cleanly.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			models := features.Models()
			if err := database.AutoMigrate(db, models...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables\n", len(models))
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users and charges from JSON seed files",
		Long: `Load users and charges from <dir>/users/data_users.json and
<dir>/charges/data_charges.json. Existing emails and charges for the same
academic year and month are skipped, so running it twice is safe.

Examples:
  feectl seed
  feectl seed --sqlite dev.db --dir internals/seeds`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			ctx, cancel := signalContext(cmd)
			defer cancel()
			return seeds.RunAllSeeds(ctx, db, dir)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", seeds.DefaultDir, "seed data directory")
	return cmd
}

func sweepOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-overdue",
		Short: "Mark fees past their due date as OVERDUE (one pass)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			ctx, cancel := signalContext(cmd)
			defer cancel()

			svc := feeService.NewFeeService(feeRepo.NewFeeRepository(db), database.NewTransactor(db))
			n, err := svc.SweepOverdue(ctx)
			if err != nil {
				return fmt.Errorf("sweep overdue: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d fees marked OVERDUE\n", n)
			return nil
		},
	}
}
