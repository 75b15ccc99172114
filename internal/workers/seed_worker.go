package workers

import (
	"context"
	"time"

	seedPort "sociopedia/internal/ports/seed"

	"go.uber.org/zap"
)

// SeedRunner is satisfied by seedapp.Loader.
type SeedRunner interface {
	Run(ctx context.Context) error
}

type SeedWorker struct {
	Loader SeedRunner
	Locker seedPort.Locker // nil: run without a lock
	Logger *zap.Logger
}

func NewSeedWorker(loader SeedRunner, locker seedPort.Locker, logger *zap.Logger) *SeedWorker {
	return &SeedWorker{
		Loader: loader,
		Locker: locker,
		Logger: logger,
	}
}

// Run seeds the store once. Failures are logged and never stop the server.
func (w *SeedWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 Seed worker started")
	start := time.Now()

	if w.Locker != nil {
		release, acquired, err := w.Locker.Acquire(ctx)
		switch {
		case err != nil:
			// seeding is idempotent, an unguarded run only risks a duplicate-key failure
			w.Logger.Warn("⚠️ Could not acquire seed lock, seeding without it", zap.Error(err))
		case !acquired:
			w.Logger.Info("Seed lock held by another instance, skipping")
			return
		default:
			defer func() {
				if err := release(context.Background()); err != nil {
					w.Logger.Warn("⚠️ Warning: could not release seed lock", zap.Error(err))
				}
			}()
		}
	}

	if err := w.Loader.Run(ctx); err != nil {
		w.Logger.Error("❌ Seeding failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return
	}
	w.Logger.Info("✅ Seeding completed", zap.Duration("elapsed", time.Since(start)))
}
