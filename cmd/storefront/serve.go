package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/application/services"
	"github.com/DanielPopoola/ficmart-storefront/internal/config"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/messaging"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/messaging/kafka"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/messaging/noop"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/payment"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/session"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/openapi"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/router"
	"github.com/DanielPopoola/ficmart-storefront/internal/metrics"
	"github.com/DanielPopoola/ficmart-storefront/internal/webhook"
	"github.com/DanielPopoola/ficmart-storefront/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the outbox relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(migrate bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting storefront",
		"port", cfg.Server.Port,
		"env", cfg.Primary.Env,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()

	if migrate {
		if err := postgres.Migrate(ctx, &cfg.Database); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}

	publisher := newPublisher(cfg.Kafka, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close publisher", "error", err)
		}
	}()

	reg := metrics.New()

	orderRepo := postgres.NewOrderRepository(db)
	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	processor := payment.NewRetryClient(payment.NewClient(cfg.Payment), cfg.Retry)
	sessions := session.NewManager(cfg.Session, session.NewRedisRevocationStore(rdb))

	ledger := services.NewOrderLedger(orderRepo, cfg.Store.Currency, reg, logger)
	userService := services.NewUserService(userRepo, sessions, logger)
	productService := services.NewProductService(productRepo, cfg.Store.Currency)
	paymentService := services.NewPaymentService(ledger, processor, logger)

	verifier, err := webhook.NewVerifier(cfg.Webhook)
	if err != nil {
		return fmt.Errorf("build webhook verifier: %w", err)
	}
	dispatcher := webhook.NewDispatcher(ledger, cfg.Webhook.CompletionTypes, logger)

	contract, err := openapi.Load(ctx)
	if err != nil {
		return err
	}

	handler, err := router.New(router.Deps{
		Handlers: handlers.NewHandlers(
			ledger,
			userService,
			productService,
			paymentService,
			cfg.Session,
			logger,
		),
		Webhook:     handlers.NewWebhookHandler(verifier, dispatcher, reg, cfg.Webhook.MaxBodyBytes, logger),
		Sessions:    sessions,
		CookieName:  cfg.Session.CookieName,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit, logger),
		Metrics:     reg,
		DB:          db,
		Contract:    contract,
		Timeout:     cfg.Server.ReadTimeout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	relay := worker.NewOutboxRelay(
		outboxRepo,
		publisher,
		reg,
		cfg.Worker.Interval,
		cfg.Worker.BatchSize,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go relay.Start(workerCtx)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		cancelWorkers()
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
	return nil
}

func newPublisher(cfg config.KafkaConfig, logger *slog.Logger) messaging.Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Warn("no kafka brokers configured, outbox events will be discarded")
		return noop.Publisher{}
	}
	logger.Info("publishing outbox events to kafka", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return kafka.NewPublisher(cfg)
}
