package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/shiftcheck/backend/api/handler"
	"github.com/shiftcheck/backend/internal/config"
	"github.com/shiftcheck/backend/internal/infrastructure/monitor"
	pgInfra "github.com/shiftcheck/backend/internal/infrastructure/postgres"
	redisInfra "github.com/shiftcheck/backend/internal/infrastructure/redis"
	"github.com/shiftcheck/backend/internal/middleware"
	"github.com/shiftcheck/backend/internal/router"
	"github.com/shiftcheck/backend/internal/seed"
	"github.com/shiftcheck/backend/internal/services/lifecycle"
	"github.com/shiftcheck/backend/pkg/clock"
	"github.com/shiftcheck/backend/pkg/httpcontext"
	"github.com/shiftcheck/backend/pkg/logger"
	"github.com/shiftcheck/backend/repository/postgres"
	redisRepo "github.com/shiftcheck/backend/repository/redis"
	authUC "github.com/shiftcheck/backend/usecase/auth"
	checklistUC "github.com/shiftcheck/backend/usecase/checklist"
	contentUC "github.com/shiftcheck/backend/usecase/content"
	reportUC "github.com/shiftcheck/backend/usecase/report"
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

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	ruleRepo := postgres.NewRuleRepository(pool)
	videoRepo := postgres.NewVideoRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL)

	if cfg.Seed.Enabled {
		seeder := seed.New(userRepo, taskRepo, zapLogger)
		if err := seeder.RunIfEmpty(appCtx, cfg.Seed.DefaultPassword); err != nil {
			zapLogger.Fatal("seeding failed", zap.Error(err))
		}
	}

	clk := clock.NewSystem(cfg.Locale.UTCOffsetHours)

	authUseCase := authUC.New(userRepo, sessionRepo, authUC.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		SessionTTL: cfg.JWT.SessionTTL,
	}, zapLogger)
	checklistUseCase := checklistUC.New(taskRepo, userRepo, clk, zapLogger)
	reportUseCase := reportUC.New(taskRepo, auditRepo, clk, zapLogger)
	contentUseCase := contentUC.New(ruleRepo, videoRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(checklistUseCase, ctxAdapter, zapLogger),
		Report:  apiHandler.NewReportHandler(reportUseCase, ctxAdapter, zapLogger),
		Content: apiHandler.NewContentHandler(contentUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
