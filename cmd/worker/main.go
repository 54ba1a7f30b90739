package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/pinkbella/storefront/internal/app"
	"github.com/pinkbella/storefront/internal/catalog"
	"github.com/pinkbella/storefront/internal/customers"
	"github.com/pinkbella/storefront/internal/orders"
	"github.com/pinkbella/storefront/internal/platform/db"
	"github.com/pinkbella/storefront/internal/shared"
	"github.com/pinkbella/storefront/internal/shipping"
	"github.com/pinkbella/storefront/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	carrier := shipping.NewClient(shipping.ClientConfig{
		BaseURL:          cfg.CarrierAPIURL,
		Token:            cfg.CarrierAPIToken,
		ContactEmail:     cfg.CarrierContact,
		OriginPostalCode: cfg.OriginPostalCode,
	})

	ordersRepo := orders.NewRepository(pool)
	ordersService := orders.NewService(
		logger, ordersRepo, customers.NewRepository(pool), catalog.NewRepository(pool), carrier, carrier, nil)

	trackingJob := jobs.NewTrackingRefreshJob(ordersService, logger)
	cleanupJob := jobs.NewIdempotencyCleanupJob(
		shared.NewIdempotencyStore(pool), cfg.IdempotencyRetention, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTrackingRefresh, Handler: trackingJob.Handle},
			{Type: jobs.TaskIdempotencyCleanup, Handler: cleanupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.TrackingRefreshCron, Task: jobs.NewTrackingRefreshTask()},
			{Spec: cfg.IdempotencyCleanupCron, Task: jobs.NewIdempotencyCleanupTask()},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker starting", slog.String("cron", cfg.TrackingRefreshCron))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
