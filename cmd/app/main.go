package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "sociopedia/internal/adapters/database"
	"sociopedia/internal/adapters/httpapi"
	redisadapter "sociopedia/internal/adapters/redis"
	"sociopedia/internal/config"
	postapp "sociopedia/internal/core/post/service"
	"sociopedia/internal/core/seed"
	seedapp "sociopedia/internal/core/seed/service"
	userapp "sociopedia/internal/core/user/service"
	seedPort "sociopedia/internal/ports/seed"
	"sociopedia/internal/workers"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	defer func() { _ = config.Logger.Sync() }()

	if err := run(); err != nil {
		config.Logger.Error("❌ Server stopped", zap.Error(err))
		_ = config.Logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load() // بارگذاری تنظیمات از .env
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// اتصال به دیتابیس؛ بدون آن هیچ چیز دیگری اجرا نمی‌شود
	if err := config.InitMongo(ctx, cfg); err != nil {
		return err
	}
	defer closeResources(config.Logger)

	if err := dbadapter.EnsureIndexes(ctx, config.DB); err != nil {
		config.Logger.Warn("⚠️ Warning: could not ensure indexes", zap.Error(err))
	}

	// Redis اختیاری است و فقط برای قفل seed استفاده می‌شود
	if err := config.InitRedis(ctx, cfg); err != nil {
		config.Logger.Warn("⚠️ Warning: Redis unavailable, seeding without a lock", zap.Error(err))
	}

	userRepo := dbadapter.NewUserRepositoryMongo(config.DB)                        // آداپتر خروجی
	postRepo := dbadapter.NewPostRepositoryMongo(config.DB)                        // آداپتر خروجی
	userSvc := userapp.NewUserService(userRepo, []byte(cfg.JWTSecret), cfg.JWTTTL) // یوزکیس/سرویس
	postSvc := postapp.NewPostService(postRepo, userRepo)                          // یوزکیس/سرویس
	r := httpapi.SetupRoutes(httpapi.RouterConfig{
		JWTSecret: []byte(cfg.JWTSecret),
		AssetsDir: cfg.AssetsDir,
		BodyLimit: cfg.BodyLimit(),
		Logger:    config.Logger,
	}, userSvc, userSvc, postSvc) // تزریق یوزکیس به آداپتر ورودی

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	srv := &http.Server{Handler: r, ReadHeaderTimeout: cfg.ReadHeaderTimeout}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()
	config.Logger.Info("🚀 Server listening", zap.String("addr", ln.Addr().String()))

	// اجرای seed در پس‌زمینه، بعد از بالا آمدن سرور
	if cfg.SeedEnabled {
		loader := seedapp.NewLoader(userRepo, postRepo, seed.Users(), seed.Posts(), config.Logger)
		var locker seedPort.Locker
		if config.RedisClient != nil {
			locker = redisadapter.NewSeedLockRedis(config.RedisClient, redisadapter.SeedLockKey, cfg.SeedLockTTL)
		}
		go workers.NewSeedWorker(loader, locker, config.Logger).Run(ctx)
	} else {
		config.Logger.Info("SEED_ENABLED=false, skipping seed")
	}

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// closeResources بستن اتصالات به Redis و دیتابیس
func closeResources(logger *zap.Logger) {
	if config.RedisClient != nil {
		if err := config.RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection:", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := config.MongoClient.Disconnect(ctx); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}
