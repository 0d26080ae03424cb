package handlers

import (
	"net/http"

	"github.com/ndewijer/portfolio-vis/internal/api/request"
	"github.com/ndewijer/portfolio-vis/internal/api/response"
	"github.com/ndewijer/portfolio-vis/internal/apperrors"
	"github.com/ndewijer/portfolio-vis/internal/model"
	"github.com/ndewijer/portfolio-vis/internal/portfolio"
	"github.com/ndewijer/portfolio-vis/internal/service"
	"github.com/ndewijer/portfolio-vis/internal/validation"
)

// PortfolioSeriesKey is the series key of the portfolio curve in performance responses.
const PortfolioSeriesKey = "Portfolio"

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// TimeseriesResponse holds one normalized series per symbol. Each series covers the
// symbol's own trading days and is not index-aligned with Dates.
type TimeseriesResponse struct {
	Dates    []string             `json:"dates"`
	Series   map[string][]float64 `json:"series"`
	Warnings []model.Warning      `json:"warnings,omitempty"`
}

// PerformanceResponse holds the benchmark and portfolio curves keyed by name, both laid
// out on Dates. The benchmark series is empty when the benchmark had no data.
type PerformanceResponse struct {
	Dates    []string             `json:"dates"`
	Series   map[string][]float64 `json:"series"`
	Warnings []model.Warning      `json:"warnings,omitempty"`
}

// CustomPortfolioResponse combines the three portfolio views.
type CustomPortfolioResponse struct {
	Distribution []model.PositionValue `json:"distribution"`
	Timeseries   TimeseriesResponse    `json:"timeseries"`
	Performance  PerformanceResponse   `json:"performance"`
	Warnings     []model.Warning       `json:"warnings,omitempty"`
}

// MetricsResponse holds summary statistics of the portfolio and its benchmark.
type MetricsResponse struct {
	BenchmarkSymbol string `json:"benchmarkSymbol"`
	portfolio.Metrics
	Warnings []model.Warning `json:"warnings,omitempty"`
}

// PredictResponse holds the close series of one symbol.
type PredictResponse struct {
	Dates       []string  `json:"dates"`
	Predictions []float64 `json:"predictions"`
}

// Distribution handles POST requests valuing each position at its latest close.
//
// Endpoint: POST /api/portfolio
// Request Body: PortfolioRequest (symbols, shares, optionally days and benchmark)
// Response: 200 OK with [{Symbol, Shares, Price, Value}]
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 502 Bad Gateway if no market data could be fetched
func (h *PortfolioHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePortfolioRequest(w, r)
	if !ok {
		return
	}

	result, err := h.portfolioService.Distribution(r.Context(), req.Query())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToValuePortfolio)
		return
	}

	response.RespondJSON(w, http.StatusOK, result.Positions)
}

// Timeseries handles requests for per-symbol normalized close series.
// GET reads a comma separated "symbols" query parameter, POST a JSON body.
//
// Endpoint: GET|POST /api/portfolio_timeseries
// Request: ?symbols=AAPL,MSFT&days=30 or TimeseriesRequest body
// Response: 200 OK with TimeseriesResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 502 Bad Gateway if no market data could be fetched
func (h *PortfolioHandler) Timeseries(w http.ResponseWriter, r *http.Request) {
	var req request.TimeseriesRequest
	if raw := r.URL.Query().Get("symbols"); r.Method == http.MethodGet && raw != "" {
		days, err := parseDaysParam(r)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequestBody.Error(), err.Error())
			return
		}
		req = request.TimeseriesRequest{Symbols: request.SplitSymbols(raw), Days: days}
	} else {
		var err error
		req, err = parseJSON[request.TimeseriesRequest](w, r)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequestBody.Error(), err.Error())
			return
		}
	}

	if err := validation.ValidateTimeseries(req); err != nil {
		respondValidationError(w, err)
		return
	}

	ts, err := h.portfolioService.Timeseries(r.Context(), req.Query())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetTimeseries)
		return
	}

	response.RespondJSON(w, http.StatusOK, newTimeseriesResponse(ts))
}

// Performance handles POST requests comparing the normalized portfolio value with the
// benchmark over the trailing window.
//
// Endpoint: POST /api/performance_timeseries
// Request Body: PortfolioRequest
// Response: 200 OK with PerformanceResponse, series keyed by benchmark symbol and "Portfolio"
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 502 Bad Gateway if no market data could be fetched
func (h *PortfolioHandler) Performance(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePortfolioRequest(w, r)
	if !ok {
		return
	}

	perf, err := h.portfolioService.Performance(r.Context(), req.Query())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPerformance)
		return
	}

	response.RespondJSON(w, http.StatusOK, newPerformanceResponse(perf))
}

// CustomPortfolio handles POST requests returning distribution, timeseries and
// performance computed from a single market data fetch.
//
// Endpoint: POST /api/custom_portfolio
// Request Body: PortfolioRequest
// Response: 200 OK with CustomPortfolioResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 502 Bad Gateway if no market data could be fetched
func (h *PortfolioHandler) CustomPortfolio(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePortfolioRequest(w, r)
	if !ok {
		return
	}

	result, err := h.portfolioService.CustomPortfolio(r.Context(), req.Query())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetCustomPortfolio)
		return
	}

	ts := newTimeseriesResponse(result.Timeseries)
	ts.Warnings = nil
	perf := newPerformanceResponse(result.Performance)
	perf.Warnings = nil

	response.RespondJSON(w, http.StatusOK, CustomPortfolioResponse{
		Distribution: result.Distribution.Positions,
		Timeseries:   ts,
		Performance:  perf,
		Warnings:     warningsOrNil(result.Warnings()),
	})
}

// Metrics handles POST requests for portfolio summary statistics.
//
// Endpoint: POST /api/performance_metrics
// Request Body: PortfolioRequest
// Response: 200 OK with MetricsResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 502 Bad Gateway if no market data could be fetched
func (h *PortfolioHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePortfolioRequest(w, r)
	if !ok {
		return
	}

	report, err := h.portfolioService.Metrics(r.Context(), req.Query())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetMetrics)
		return
	}

	response.RespondJSON(w, http.StatusOK, MetricsResponse{
		BenchmarkSymbol: string(report.Benchmark),
		Metrics:         report.Metrics,
		Warnings:        warningsOrNil(report.Warnings),
	})
}

// Predict handles POST requests for a symbol's recent closes. No model is involved:
// the "predictions" are the fetched closes rounded to two decimals.
//
// Endpoint: POST /api/predict
// Request Body: PredictRequest (symbol, optionally days)
// Response: 200 OK with PredictResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 502 Bad Gateway if no market data could be fetched
func (h *PortfolioHandler) Predict(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.PredictRequest](w, r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequestBody.Error(), err.Error())
		return
	}

	if err := validation.ValidatePredict(req); err != nil {
		respondValidationError(w, err)
		return
	}

	days := 0
	if req.Days != nil {
		days = *req.Days
	}
	prediction, err := h.portfolioService.Predict(r.Context(), model.NewSymbol(req.Symbol), days)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPrediction)
		return
	}

	response.RespondJSON(w, http.StatusOK, PredictResponse{
		Dates:       prediction.Dates,
		Predictions: prediction.Predictions,
	})
}

func (h *PortfolioHandler) parsePortfolioRequest(w http.ResponseWriter, r *http.Request) (request.PortfolioRequest, bool) {
	req, err := parseJSON[request.PortfolioRequest](w, r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRequestBody.Error(), err.Error())
		return req, false
	}

	if err := validation.ValidatePortfolio(req); err != nil {
		respondValidationError(w, err)
		return req, false
	}
	return req, true
}

func newTimeseriesResponse(ts portfolio.Timeseries) TimeseriesResponse {
	series := make(map[string][]float64, len(ts.Series))
	for symbol, values := range ts.Series {
		series[string(symbol)] = seriesOrEmpty(values)
	}
	return TimeseriesResponse{
		Dates:    ts.Dates,
		Series:   series,
		Warnings: warningsOrNil(ts.Warnings),
	}
}

func newPerformanceResponse(perf portfolio.Performance) PerformanceResponse {
	return PerformanceResponse{
		Dates: perf.Dates,
		Series: map[string][]float64{
			string(perf.BenchmarkSymbol): seriesOrEmpty(perf.Benchmark),
			PortfolioSeriesKey:           seriesOrEmpty(perf.Portfolio),
		},
		Warnings: warningsOrNil(perf.Warnings),
	}
}
