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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/rmaia/contaflux/internal/adapter/http"
	"github.com/rmaia/contaflux/internal/adapter/http/handler"
	"github.com/rmaia/contaflux/internal/adapter/http/middleware"
	postgresRepo "github.com/rmaia/contaflux/internal/adapter/repository/postgres"
	redisRepo "github.com/rmaia/contaflux/internal/adapter/repository/redis"
	"github.com/rmaia/contaflux/internal/infrastructure/config"
	"github.com/rmaia/contaflux/internal/infrastructure/logging"
	"github.com/rmaia/contaflux/internal/infrastructure/metrics"
	"github.com/rmaia/contaflux/internal/infrastructure/postgres"
	"github.com/rmaia/contaflux/internal/infrastructure/redis"
	"github.com/rmaia/contaflux/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_FORMAT") != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Use case internals log through slog; route it through the same
	// level and format settings.
	slog.SetDefault(logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat).Logger)

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	titleRepo := postgresRepo.NewTitleRepository(pool)
	installmentRepo := postgresRepo.NewInstallmentRepository(pool)
	dailyBalanceRepo := postgresRepo.NewDailyBalanceRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	paymentMethodRepo := postgresRepo.NewPaymentMethodRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()
	appMetrics := metrics.New()

	// Initialize use cases
	balanceUC := usecase.NewBalanceUseCase(txManager, accountRepo, movementRepo, dailyBalanceRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo, movementRepo, installmentRepo, auditRepo, idGen).
		WithCache(cache)
	titleUC := usecase.NewTitleUseCase(txManager, titleRepo, installmentRepo, auditRepo, idGen)
	movementUC := usecase.NewMovementUseCase(txManager, accountRepo, movementRepo, auditRepo, balanceUC, idGen).
		WithCache(cache)
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, titleRepo, installmentRepo, movementRepo, auditRepo, paymentMethodRepo, balanceUC, idGen).
		WithRetrier(retrier).
		WithMetrics(appMetrics).
		WithCache(cache)
	cashFlowUC := usecase.NewCashFlowUseCase(movementRepo, installmentRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	titleHandler := handler.NewTitleHandler(titleUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	movementHandler := handler.NewMovementHandler(movementUC)
	balanceHandler := handler.NewBalanceHandler(balanceUC)
	cashFlowHandler := handler.NewCashFlowHandler(cashFlowUC)
	auditHandler := handler.NewAuditHandler(auditUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rateLimiter.Reset()
			case <-sweepCtx.Done():
				return
			}
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		TitleHandler:     titleHandler,
		PaymentHandler:   paymentHandler,
		MovementHandler:  movementHandler,
		BalanceHandler:   balanceHandler,
		CashFlowHandler:  cashFlowHandler,
		AuditHandler:     auditHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
		Logger:           log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopSweep()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
