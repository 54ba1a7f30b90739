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

	"github.com/redis/go-redis/v9"

	"github.com/pinkbella/storefront/internal/app"
	"github.com/pinkbella/storefront/internal/catalog"
	"github.com/pinkbella/storefront/internal/customers"
	"github.com/pinkbella/storefront/internal/orders"
	"github.com/pinkbella/storefront/internal/platform/db"
	"github.com/pinkbella/storefront/internal/postal"
	"github.com/pinkbella/storefront/internal/shared"
	"github.com/pinkbella/storefront/internal/shipping"
	"github.com/pinkbella/storefront/migrations"
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

	if err := db.Migrate(cfg.PGDSN, migrations.FS); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	postalResolver := postal.NewCachedResolver(
		postal.NewClient(cfg.PostalAPIURL), redisClient, cfg.PostalCacheTTL)
	postalHandler := postal.NewHandler(logger, postalResolver)

	carrier := shipping.NewClient(shipping.ClientConfig{
		BaseURL:          cfg.CarrierAPIURL,
		Token:            cfg.CarrierAPIToken,
		ContactEmail:     cfg.CarrierContact,
		OriginPostalCode: cfg.OriginPostalCode,
		Sender: shipping.Sender{
			Name:         cfg.SenderName,
			Phone:        cfg.SenderPhone,
			Email:        cfg.SenderEmail,
			Document:     cfg.SenderDocument,
			Street:       cfg.SenderStreet,
			Number:       cfg.SenderNumber,
			Complement:   cfg.SenderComplement,
			Neighborhood: cfg.SenderNeighborhood,
			City:         cfg.SenderCity,
			Region:       cfg.SenderRegion,
			PostalCode:   cfg.OriginPostalCode,
		},
	})

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	customersRepo := customers.NewRepository(pool)
	customersService := customers.NewService(logger, customersRepo, postalResolver)
	customersHandler := customers.NewHandler(logger, customersService)

	shippingService := shipping.NewService(catalogRepo, carrier)
	shippingHandler := shipping.NewHandler(logger, shippingService)

	ordersRepo := orders.NewRepository(pool)
	idemStore := shared.NewIdempotencyStore(pool)
	ordersService := orders.NewService(logger, ordersRepo, customersRepo, catalogRepo, carrier, carrier, idemStore)
	ordersHandler := orders.NewHandler(logger, ordersService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CatalogHandler:   catalogHandler,
		CustomersHandler: customersHandler,
		OrdersHandler:    ordersHandler,
		ShippingHandler:  shippingHandler,
		PostalHandler:    postalHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
