// The kiosk binary runs on the wall-mounted tablet next to the pass. It
// keeps a local snapshot of the checklist in sync with the server and
// survives short network drops without showing stale toggles.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/shiftcheck/backend/internal/config"
	"github.com/shiftcheck/backend/internal/services/lifecycle"
	"github.com/shiftcheck/backend/pkg/logger"
	"github.com/shiftcheck/backend/pkg/syncclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := syncclient.OpenSnapshot(cfg.Sync.SnapshotPath)
	if err != nil {
		zapLogger.Fatal("failed to open snapshot store", zap.Error(err))
	}
	manager.Register("snapshot", func(ctx context.Context) error {
		return store.Close()
	})

	client := syncclient.New(syncclient.Config{
		BaseURL:        cfg.Sync.ServerURL,
		Token:          cfg.Sync.Token,
		PollInterval:   cfg.Sync.PollInterval,
		RequestTimeout: cfg.Context.RequestTimeout,
	}, store, zapLogger)

	if _, err := client.Refresh(); err != nil {
		zapLogger.Warn("initial fetch failed, serving last snapshot", zap.Error(err))
	}
	if err := client.Start(); err != nil {
		zapLogger.Fatal("failed to start reconciliation poll", zap.Error(err))
	}
	manager.Register("sync_client", func(ctx context.Context) error {
		client.Stop()
		return nil
	})

	zapLogger.Info("kiosk sync running",
		zap.String("server", cfg.Sync.ServerURL),
		zap.Duration("poll_interval", cfg.Sync.PollInterval))

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
