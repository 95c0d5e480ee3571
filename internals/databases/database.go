package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smartedu_backend/internals/configs"
	"smartedu_backend/internals/helpers/logger"
)

var DB *gorm.DB

func ConnectDB(cfg configs.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	logger.L().Info("🔌 Koneksi ke PostgreSQL...")

	// statement_timeout dijaga di sisi server; PgBouncer-friendly (simple protocol)
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=smartedu&options=-c statement_timeout=5000",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	DB = db
	logger.L().Info("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DatabaseConfig) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.WithError(err).Warn("pool tune err")
		return
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			logger.WithError(err).Warn("warm-up ping err")
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate creates/updates the tables for the given models.
func AutoMigrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// ConnectSQLite opens a local sqlite file (pure Go, no cgo). Dipakai feectl
// dan dev lokal tanpa Postgres.
func ConnectSQLite(path, logLevel string) (*gorm.DB, error) {
	logger.L().Infof("🔌 Koneksi ke SQLite %s...", path)
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: configs.NewGormLogger(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	DB = db
	return db, nil
}
