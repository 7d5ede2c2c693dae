package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/kaskita/kasledger/internal/adapter/http/handler"
	"github.com/kaskita/kasledger/internal/adapter/http/middleware"
	"github.com/kaskita/kasledger/internal/infrastructure/auth"
	"github.com/kaskita/kasledger/internal/infrastructure/metrics"
	"github.com/kaskita/kasledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler *handler.AccountHandler
	PostingHandler *handler.PostingHandler
	HistoryHandler *handler.HistoryHandler
	ShiftHandler   *handler.ShiftHandler
	PricingHandler *handler.PricingHandler
	LedgerHandler  *handler.LedgerHandler
	HealthHandler  *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger

	JWTManager  *auth.JWTManager
	AuthEnabled bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Health and metrics stay unthrottled.
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}
		if cfg.AuthEnabled && cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/low-balance", cfg.AccountHandler.LowBalance)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/entries", cfg.HistoryHandler.Entries)
			r.Get("/{id}/history", cfg.HistoryHandler.History)
			r.Get("/{id}/consistency", cfg.LedgerHandler.CheckAccount)
		})

		// Business events, one endpoint per kind
		r.Route("/events", func(r chi.Router) {
			r.Post("/transfer-out", cfg.PostingHandler.TransferOut)
			r.Post("/withdrawal", cfg.PostingHandler.Withdrawal)
			r.Post("/topup", cfg.PostingHandler.TopUp)
			r.Post("/kjp-withdrawal", cfg.PostingHandler.KJPWithdrawal)
			r.Post("/edc", cfg.PostingHandler.EDCService)
			r.Post("/internal-transfer", cfg.PostingHandler.InternalTransfer)
			r.Post("/capital-injection", cfg.PostingHandler.CapitalInjection)
			r.Post("/capital-withdrawal", cfg.PostingHandler.CapitalWithdrawal)
			r.Post("/balance-adjustment", cfg.PostingHandler.BalanceAdjustment)
			r.Post("/settlement", cfg.PostingHandler.Settlement)
			r.Get("/{correlationID}/entries", cfg.HistoryHandler.EventLegs)
		})

		// Shifts and reconciliation
		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", cfg.ShiftHandler.Start)
			r.Get("/current", cfg.ShiftHandler.Current)
			r.Post("/close", cfg.ShiftHandler.Close)
			r.Post("/reconcile", cfg.ShiftHandler.Reconcile)
			r.Get("/reconciliations", cfg.ShiftHandler.ListReconciliations)
		})

		// Pricing catalog
		r.Route("/pricing", func(r chi.Router) {
			r.Get("/", cfg.PricingHandler.List)
			r.Get("/{code}", cfg.PricingHandler.Get)
		})

		// Ledger integrity
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckAll)
	})

	return r
}
