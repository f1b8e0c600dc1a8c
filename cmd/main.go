package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/app"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/config"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/infra/handler"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/infra/push"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/infra/repository"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/middleware"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

const (
	serviceName     = "reminder-alarm"
	shutdownTimeout = 30 * time.Second
	slowQuery       = 200 * time.Millisecond
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)

		return 1
	}

	if err := validatePlatform(cfg); err != nil {
		slog.Error("platform configuration error", "error", err)

		return 1
	}

	ctx := context.Background()

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", "error", err)

		return 1
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush telemetry", "error", err)
		}
	}()

	db, err := initDatabase(cfg.Database)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)

		return 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get underlying sql.DB", "error", err)

		return 1
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
	}()

	gateway, err := initGateway(ctx, cfg.Push)
	if err != nil {
		slog.Error("failed to initialize push gateway", "error", err)

		return 1
	}

	publisher, err := initPublisher(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize event publisher", "error", err)

		return 1
	}

	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Warn("failed to close publisher", "error", err)
			}
		}()
	}

	meterProvider := obs.Metrics.MeterProvider()

	alarmMetrics, err := metrics.NewAlarmMetrics(meterProvider)
	if err != nil {
		slog.Error("failed to create alarm metrics", "error", err)

		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics(meterProvider)
	if err != nil {
		slog.Error("failed to create http metrics", "error", err)

		return 1
	}

	reminderRepo := repository.NewReminderRepository(db)
	familyRepo := repository.NewFamilyRepository(db)

	dispatcher := app.NewDispatcher(app.DispatcherParams{
		Families:  familyRepo,
		Reminders: reminderRepo,
		Gateway:   gateway,
		Metrics:   alarmMetrics,
		Config: app.DispatcherConfig{
			TTL:        cfg.Push.TTL,
			RatePerSec: cfg.Push.RatePerSec,
		},
	})

	scheduler := app.NewScheduler(app.SchedulerParams{
		Repository: reminderRepo,
		Calculator: domain.NewExecutionCalculator(cfg.Scheduler.Location),
		Notifier:   dispatcher,
		Publisher:  publisher,
		Metrics:    alarmMetrics,
		Config: app.SchedulerConfig{
			FireTimeout:          cfg.Scheduler.FireTimeout,
			RestoreBatchSize:     cfg.Scheduler.RestoreBatchSize,
			RestoreRetryInterval: cfg.Scheduler.RestoreRetryInterval,
		},
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Restoration completes before the API accepts writes, so a request can
	// never race a reminder that is still being restored.
	initCtx, cancelInit := context.WithCancel(ctx)
	go func() {
		select {
		case <-quit:
			cancelInit()
		case <-initCtx.Done():
		}
	}()

	restored, err := scheduler.Init(initCtx)
	cancelInit()

	if err != nil {
		slog.Error("failed to restore schedules", "error", err)
		shutdownEngine(scheduler, dispatcher)

		return 1
	}

	slog.Info("schedules restored", "jobs", restored)

	scheduleUseCase := app.NewScheduleUseCase(reminderRepo, scheduler, dispatcher)
	scheduleHandler := handler.NewScheduleHandler(scheduleUseCase)

	router := setupRouter(scheduleHandler, httpMetrics)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)

	go func() {
		slog.Info("starting server",
			"address", cfg.Server.Address(),
			"version", Version,
		)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())

	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server exited with error", "error", err)
			shutdownEngine(scheduler, dispatcher)

			return 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	code := 0

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)

		code = 1
	}

	if err := scheduler.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to stop scheduler", "error", err)

		code = 1
	}

	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to stop dispatcher", "error", err)

		code = 1
	}

	slog.Info("server exited properly")

	return code
}

func shutdownEngine(scheduler *app.Scheduler, dispatcher *app.Dispatcher) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := errors.Join(scheduler.Shutdown(ctx), dispatcher.Shutdown(ctx)); err != nil {
		slog.Warn("engine did not stop cleanly", "error", err)
	}
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logging.NewGormLogger(slowQuery),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func initGateway(ctx context.Context, cfg config.PushConfig) (push.Gateway, error) {
	if cfg.CredentialsFile == "" {
		slog.Warn("FCM_CREDENTIALS_FILE not set, notifications are logged only")

		return push.NewLogGateway(), nil
	}

	gateway, err := push.NewFCMGateway(ctx, push.FCMConfig{
		CredentialsFile: cfg.CredentialsFile,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("FCM gateway initialized")

	return gateway, nil
}

func setupRouter(scheduleHandler *handler.ScheduleHandler, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	router := gin.New()

	router.Use(middleware.PanicRecoveryGin())
	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/ping"},
		Module:      logging.ModuleAPI,
		TracerName:  serviceName,
		HTTPMetrics: httpMetrics,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	scheduleHandler.RegisterRoutes(v1)

	return router
}
