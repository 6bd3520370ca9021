package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rmaia/contaflux/internal/adapter/http/handler"
	"github.com/rmaia/contaflux/internal/adapter/http/middleware"
	"github.com/rmaia/contaflux/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	TitleHandler     *handler.TitleHandler
	PaymentHandler   *handler.PaymentHandler
	MovementHandler  *handler.MovementHandler
	BalanceHandler   *handler.BalanceHandler
	CashFlowHandler  *handler.CashFlowHandler
	AuditHandler     *handler.AuditHandler
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
		r.Use(middleware.TenantMiddleware)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Patch("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Get("/{id}/summary", cfg.AccountHandler.Summary)
			r.Get("/{id}/movements", cfg.MovementHandler.ListByAccount)
			r.Get("/{id}/movements/summary", cfg.MovementHandler.Summary)
			r.Get("/{id}/balances/daily", cfg.BalanceHandler.ListDaily)
			r.Post("/{id}/recalculate", cfg.BalanceHandler.RecalculateAccount)
		})

		// Ledger movements
		r.Route("/movements", func(r chi.Router) {
			r.Post("/", cfg.MovementHandler.Append)
			r.Get("/", cfg.MovementHandler.List)
		})

		// Titles and installments
		r.Route("/titles", func(r chi.Router) {
			r.Post("/", cfg.TitleHandler.Create)
			r.Get("/", cfg.TitleHandler.List)
			r.Get("/{id}", cfg.TitleHandler.Get)
		})

		r.Route("/installments", func(r chi.Router) {
			r.Get("/{id}", cfg.TitleHandler.GetInstallment)
			r.Post("/{id}/pay", cfg.PaymentHandler.Pay)
			r.Post("/{id}/reverse", cfg.PaymentHandler.Reverse)
		})

		// Balances and projections
		r.Post("/balances/recalculate", cfg.BalanceHandler.RecalculateTenant)
		r.Get("/cashflow", cfg.CashFlowHandler.Get)

		// Audit trail
		r.Get("/audit", cfg.AuditHandler.List)
	})

	return r
}
