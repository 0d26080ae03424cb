package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/portfolio-vis/internal/api/handlers"
	custommiddleware "github.com/ndewijer/portfolio-vis/internal/api/middleware"
	"github.com/ndewijer/portfolio-vis/internal/api/response"
	"github.com/ndewijer/portfolio-vis/internal/config"
	"github.com/ndewijer/portfolio-vis/internal/service"
)

// requestTimeout bounds a whole request; the market data fetch has its own, shorter bound.
const requestTimeout = 60 * time.Second

// Services groups the services the router exposes.
type Services struct {
	Portfolio *service.PortfolioService
	Symbol    *service.SymbolService
	System    *service.SystemService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(custommiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.RespondError(w, http.StatusNotFound, "not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.RespondError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
		r.Post("/portfolio", portfolioHandler.Distribution)
		r.Get("/portfolio_timeseries", portfolioHandler.Timeseries)
		r.Post("/portfolio_timeseries", portfolioHandler.Timeseries)
		r.Post("/performance_timeseries", portfolioHandler.Performance)
		r.Post("/performance_metrics", portfolioHandler.Metrics)
		r.Post("/custom_portfolio", portfolioHandler.CustomPortfolio)
		r.Post("/predict", portfolioHandler.Predict)

		symbolHandler := handlers.NewSymbolHandler(services.Symbol)
		r.Get("/symbols", symbolHandler.Symbols)
	})

	return r
}
