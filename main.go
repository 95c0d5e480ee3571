package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"smartedu_backend/internals/configs"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/features"
	feeRepo "smartedu_backend/internals/features/finance/fees/repository"
	feeScheduler "smartedu_backend/internals/features/finance/fees/scheduler"
	feeService "smartedu_backend/internals/features/finance/fees/service"
	authRepo "smartedu_backend/internals/features/users/auth/repository"
	authScheduler "smartedu_backend/internals/features/users/auth/scheduler"
	authService "smartedu_backend/internals/features/users/auth/service"
	userRepo "smartedu_backend/internals/features/users/user/repository"
	helper "smartedu_backend/internals/helpers"
	"smartedu_backend/internals/helpers/logger"
	middlewares "smartedu_backend/internals/middlewares"
	routes "smartedu_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               cfg.Server.BodyLimit,
		ErrorHandler:            helper.ErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR Cloudflare jika perlu
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg.Database, cfg.Log.Level)
	if err != nil {
		logger.WithError(err).Fatal("❌ DB connect gagal")
	}
	database.TunePool(db, cfg.Database)
	database.WarmUpQueries(db)

	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(db, features.Models()...); err != nil {
			logger.WithError(err).Fatal("❌ migrate gagal")
		}
	}

	// ⏱ scheduler setelah DB siap
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	fees := feeService.NewFeeService(feeRepo.NewFeeRepository(db), database.NewTransactor(db))
	feeScheduler.StartOverdueScheduler(bgCtx, fees, cfg.Payment.OverdueSweep)

	auth := authService.NewAuthService(
		userRepo.NewUserRepository(db),
		authRepo.NewAuthRepository(db, cfg.JWT.Secret),
		authService.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL),
	)
	authScheduler.StartBlacklistCleanupScheduler(bgCtx, auth, cfg.JWT.BlacklistSweep)

	// ✅ Routes (+ /health, /metrics)
	routes.SetupRoutes(app, db, cfg)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = cfg.Server.ReadTimeout
	app.Server().WriteTimeout = cfg.Server.WriteTimeout
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		logger.Infof("✅ Listening on :%s", cfg.Server.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Server.Port)); err != nil {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.L().Info("🛑 Shutting down...")
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
