package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/kaskita/kasledger/internal/adapter/http"
	"github.com/kaskita/kasledger/internal/adapter/http/handler"
	httpMiddleware "github.com/kaskita/kasledger/internal/adapter/http/middleware"
	postgresRepo "github.com/kaskita/kasledger/internal/adapter/repository/postgres"
	redisRepo "github.com/kaskita/kasledger/internal/adapter/repository/redis"
	"github.com/kaskita/kasledger/internal/domain"
	"github.com/kaskita/kasledger/internal/infrastructure/auth"
	"github.com/kaskita/kasledger/internal/infrastructure/config"
	"github.com/kaskita/kasledger/internal/infrastructure/logger"
	"github.com/kaskita/kasledger/internal/infrastructure/metrics"
	"github.com/kaskita/kasledger/internal/infrastructure/postgres"
	"github.com/kaskita/kasledger/internal/infrastructure/redis"
	"github.com/kaskita/kasledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	if cfg.MDRRate != "" {
		rate, err := decimal.NewFromString(cfg.MDRRate)
		if err != nil {
			appLogger.Fatal().Err(err).Str("mdr_rate", cfg.MDRRate).Msg("invalid MDR rate")
		}
		domain.DefaultMDRRate = rate
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations", appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	appMetrics := metrics.New()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			appMetrics.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	shiftRepo := postgresRepo.NewShiftRepository(pool)
	pricingRepo := postgresRepo.NewPricingRepository(pool)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	catalog := redisRepo.NewPricingCache(pricingRepo, cache, cfg.PricingCacheTTL)

	// Use cases
	guard := usecase.NewDuplicateGuard(auditRepo)
	postingUC := usecase.NewPostingUseCase(
		txManager, accountRepo, entryRepo, auditRepo,
		catalog, guard, retrier, idGen, cfg.DeviceName, appLogger,
	)
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	historyUC := usecase.NewHistoryUseCase(entryRepo)
	shiftUC := usecase.NewShiftUseCase(shiftRepo, postingUC, idGen)
	reconcileUC := usecase.NewReconciliationUseCase(shiftRepo, entryRepo, accountRepo, idGen)
	pricingUC := usecase.NewPricingUseCase(catalog)
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, entryRepo)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			appLogger.Fatal().Msg("AUTH_ENABLED requires JWT_SECRET")
		}
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler: handler.NewAccountHandler(accountUC, appMetrics),
		PostingHandler: handler.NewPostingHandler(postingUC, appMetrics),
		HistoryHandler: handler.NewHistoryHandler(historyUC),
		ShiftHandler:   handler.NewShiftHandler(shiftUC, reconcileUC, appMetrics),
		PricingHandler: handler.NewPricingHandler(pricingUC),
		LedgerHandler:  handler.NewLedgerHandler(ledgerUC),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),

		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      httpMiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Metrics:          appMetrics,
		Logger:           appLogger,

		JWTManager:  jwtManager,
		AuthEnabled: cfg.AuthEnabled,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().
			Str("port", cfg.HTTPPort).
			Str("device", cfg.DeviceName).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
