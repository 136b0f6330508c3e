package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cashwell/cashwell/internal/adapter/http/handler"
	"github.com/cashwell/cashwell/internal/adapter/http/middleware"
	"github.com/cashwell/cashwell/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler     *handler.EntryHandler
	MemberHandler    *handler.MemberHandler
	StatsHandler     *handler.StatsHandler
	WalletHandler    *handler.WalletHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Put("/{id}", cfg.EntryHandler.Update)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
		})

		// Members
		r.Route("/members", func(r chi.Router) {
			r.Get("/", cfg.MemberHandler.List)
			r.Delete("/{id}", cfg.MemberHandler.Kick)
			r.Put("/{id}/amount", cfg.MemberHandler.SetAmount)
		})

		// Stats
		r.Route("/stats", func(r chi.Router) {
			r.Get("/overview", cfg.StatsHandler.Overview)
			r.Get("/daily-profit", cfg.StatsHandler.DailyProfit)
			r.Get("/records", cfg.StatsHandler.Records)
			r.Get("/rankings", cfg.StatsHandler.Rankings)
			r.Get("/monthly-net", cfg.StatsHandler.MonthlyNet)
			r.Get("/members/{id}", cfg.StatsHandler.MemberStats)
		})

		// Wallet
		r.Route("/wallet", func(r chi.Router) {
			r.Get("/assets", cfg.WalletHandler.List)
			r.Post("/assets", cfg.WalletHandler.Create)
			r.Put("/assets/{id}", cfg.WalletHandler.Update)
			r.Delete("/assets/{id}", cfg.WalletHandler.Delete)
			r.Post("/transfer", cfg.WalletHandler.Transfer)
		})

		// Group
		r.Route("/group", func(r chi.Router) {
			r.Get("/funds", cfg.WalletHandler.GroupFunds)
			r.Post("/reset", cfg.MemberHandler.ResetGroup)
		})

		// Asset labels
		r.Get("/assets", cfg.EntryHandler.Labels)

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
