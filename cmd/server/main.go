package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/cashwell/cashwell/internal/adapter/http"
	"github.com/cashwell/cashwell/internal/adapter/http/handler"
	"github.com/cashwell/cashwell/internal/adapter/http/middleware"
	postgresRepo "github.com/cashwell/cashwell/internal/adapter/repository/postgres"
	redisRepo "github.com/cashwell/cashwell/internal/adapter/repository/redis"
	"github.com/cashwell/cashwell/internal/infrastructure/config"
	"github.com/cashwell/cashwell/internal/infrastructure/logger"
	"github.com/cashwell/cashwell/internal/infrastructure/metrics"
	"github.com/cashwell/cashwell/internal/infrastructure/postgres"
	"github.com/cashwell/cashwell/internal/infrastructure/priceapi"
	"github.com/cashwell/cashwell/internal/infrastructure/redis"
	"github.com/cashwell/cashwell/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

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

	// Run schema migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	m := metrics.New()

	// Initialize repositories
	retrier := postgresRepo.NewRetrier(log.Logger)
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool, retrier)
	memberRepo := postgresRepo.NewMemberRepository(pool, retrier)
	walletRepo := postgresRepo.NewWalletRepository(pool, retrier)
	labelRepo := postgresRepo.NewLabelRepository(pool, retrier)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Load the ledger snapshot
	state := usecase.NewLedgerState(entryRepo, memberRepo, walletRepo, labelRepo, txManager, log.Logger)
	if err := state.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load ledger snapshot")
	}
	log.Info().Msg("ledger snapshot loaded")

	// Rewrite legacy data before serving
	migrationUC := usecase.NewMigrationUseCase(state, cfg.PrimaryMemberID, log.Logger)
	if err := migrationUC.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run data migrations")
	}

	// Price source: live APIs behind a Redis cache
	priceClient := priceapi.NewClient(log.Logger, priceapi.WithMetrics(m))
	priceSource := redisRepo.NewPriceCache(redisClient, priceClient, cfg.PriceCacheTTL)

	// Initialize use cases
	entryUC := usecase.NewEntryUseCase(state, idGen)
	memberUC := usecase.NewMemberUseCase(state)
	statsUC := usecase.NewStatsUseCase(state, cfg.PrimaryMemberID)
	walletUC := usecase.NewWalletUseCase(state, idGen, priceSource, cfg.PrimaryMemberID, log.Logger)
	consistencyUC := usecase.NewConsistencyUseCase(state, cfg.PrimaryMemberID)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:     handler.NewEntryHandler(entryUC),
		MemberHandler:    handler.NewMemberHandler(memberUC),
		StatsHandler:     handler.NewStatsHandler(statsUC),
		WalletHandler:    handler.NewWalletHandler(walletUC),
		LedgerHandler:    handler.NewLedgerHandler(consistencyUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
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

	// Start background price refresher
	refreshCtx, stopRefresh := context.WithCancel(ctx)
	defer stopRefresh()
	go refreshPrices(refreshCtx, walletUC, m, cfg.PriceRefreshInterval, log.Logger)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Track pool usage while serving
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-ticker.C:
				m.DBConnections.Set(float64(pool.Stat().TotalConns()))
			}
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopRefresh()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// refreshPrices revalues crypto wallet assets on a fixed interval until
// ctx is cancelled.
func refreshPrices(ctx context.Context, walletUC *usecase.WalletUseCase, m *metrics.Metrics, interval time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.PriceRefreshRuns.Inc()
			if err := walletUC.RefreshPrices(ctx); err != nil {
				logger.Warn().Err(err).Msg("price refresh failed")
			}
		}
	}
}
