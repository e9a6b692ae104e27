// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/dashboard-be/internal/adapters/db"
	"github.com/ammerola/dashboard-be/internal/adapters/storage"
	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/ports"
	"github.com/ammerola/dashboard-be/internal/core/services"
	"github.com/ammerola/dashboard-be/internal/pkg/config"
	"github.com/ammerola/dashboard-be/internal/pkg/logger"
	"github.com/ammerola/dashboard-be/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	// Fewer connections for the worker
	dbConfig := db.ConfigFromSettings(cfg.Database)
	dbConfig.MaxConnections = 10
	dbConfig.MinConnections = 2

	database, err := db.NewDatabase(ctx, dbConfig, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	// Snapshots read the committed rows, so these services run without the list cache
	saleService := services.NewSaleService(db.NewSaleStore(database, slogger), slogger)
	inventoryService := services.NewInventoryService(db.NewInventoryStore(database, slogger), slogger)
	activity := db.NewActivityRepository(database, slogger)

	var store ports.ObjectStore
	if cfg.SnapshotsEnabled() {
		s3, err := storage.NewS3Storage(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, slogger)
		if err != nil {
			slogger.Error("failed to initialize snapshot storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
		store = s3
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     cfg.Asynq.Concurrency,
			Queues:          cfg.Asynq.Queues,
			StrictPriority:  cfg.Asynq.StrictPriority,
			ErrorHandler:    asynq.ErrorHandlerFunc(handleError(slogger)),
			RetryDelayFunc:  exponentialBackoff,
			ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc: healthCheck(slogger),
			Logger:          newAsynqLogger(slogger),
		},
	)

	mux := asynq.NewServeMux()

	patchedProcessor := workers.NewCollectionPatchedProcessor(activity, store, map[string]workers.SnapshotSource{
		saleService.Kind():      workers.ListSource[*domain.Sale](saleService),
		inventoryService.Kind(): workers.ListSource[*domain.Inventory](inventoryService),
	}, slogger)
	mux.HandleFunc(workers.TypeCollectionPatched, patchedProcessor.ProcessCollectionPatched)

	cleanupProcessor := workers.NewCleanupProcessor(activity, store,
		[]string{saleService.Kind(), inventoryService.Kind()},
		cfg.Collections.ActivityRetention, slogger)
	mux.HandleFunc(workers.TypeCleanupActivity, cleanupProcessor.CleanupActivity)

	scheduler, err := newScheduler(redisOpt, cfg, slogger)
	if err != nil {
		slogger.Error("failed to register periodic tasks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(mux); err != nil {
		slogger.Error("failed to start worker server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if scheduler != nil {
		if err := scheduler.Start(); err != nil {
			slogger.Error("failed to start scheduler", slog.String("error", err.Error()))
			srv.Shutdown()
			os.Exit(1)
		}
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.Bool("snapshots", store != nil))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	if scheduler != nil {
		scheduler.Shutdown()
	}
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// newScheduler registers the periodic cleanup. It returns nil when no
// schedule is configured.
func newScheduler(redisOpt asynq.RedisClientOpt, cfg *config.Config, logger *slog.Logger) (*asynq.Scheduler, error) {
	if cfg.Collections.CleanupSchedule == "" {
		return nil, nil
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   newAsynqLogger(logger),
	})

	task, err := workers.NewCleanupActivityTask(workers.CleanupPayload{})
	if err != nil {
		return nil, err
	}

	entryID, err := scheduler.Register(cfg.Collections.CleanupSchedule, task, asynq.MaxRetry(cfg.Asynq.RetryMax))
	if err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", workers.TypeCleanupActivity, err)
	}

	logger.Info("periodic task registered",
		slog.String("task", workers.TypeCleanupActivity),
		slog.String("schedule", cfg.Collections.CleanupSchedule),
		slog.String("entry_id", entryID))

	return scheduler, nil
}

func handleError(logger *slog.Logger) func(ctx context.Context, task *asynq.Task, err error) {
	return func(ctx context.Context, task *asynq.Task, err error) {
		logger.ErrorContext(ctx, "task processing failed",
			slog.String("type", task.Type()),
			slog.String("payload", string(task.Payload())),
			slog.String("error", err.Error()))
	}
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(logger *slog.Logger) func(error) {
	return func(err error) {
		if err != nil {
			logger.Error("worker health check failed", slog.String("error", err.Error()))
		}
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...any) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...any) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...any) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...any) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...any) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
