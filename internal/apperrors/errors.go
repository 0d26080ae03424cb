package apperrors

import "errors"

// Market data errors represent failures of the upstream price provider.
var (
	// ErrDataUnavailable indicates that no bars could be obtained for the requested symbol set,
	// either because the provider returned nothing or because the fetch failed or timed out.
	// It is fatal for the whole request.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrSymbolNotFound indicates that a single symbol has no bars in the fetched data.
	// Callers recover from it locally (zero price, zero value) and record a warning.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrProviderNotSupported indicates an unknown MARKET_PROVIDER value.
	ErrProviderNotSupported = errors.New("market data provider not supported")
)

// Computation errors are raised by the valuation and normalization layer.
var (
	// ErrDivisionByZero indicates that a series cannot be normalized because it is empty
	// or its first value is zero. It is never surfaced to API clients.
	ErrDivisionByZero = errors.New("division by zero")
)

// Business logic errors represent validation failures on client input.
var (
	// ErrMalformedInput indicates an invalid portfolio request (mismatched symbols/shares
	// lengths, duplicate symbols, negative share counts).
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Configuration errors are returned by config.Load.
var (
	ErrMissingCredentials = errors.New("market data credentials are not configured")
	ErrInvalidCredentials = errors.New("encrypted credential could not be decrypted")
)

// Operation failure errors are the user-facing messages used by the HTTP layer.
var (
	ErrFailedToValuePortfolio     = errors.New("failed to value portfolio")
	ErrFailedToGetTimeseries      = errors.New("failed to get portfolio timeseries")
	ErrFailedToGetPerformance     = errors.New("failed to get performance timeseries")
	ErrFailedToGetMetrics         = errors.New("failed to get performance metrics")
	ErrFailedToGetCustomPortfolio = errors.New("failed to build custom portfolio")
	ErrFailedToGetPrediction      = errors.New("failed to get prediction")
	ErrFailedToLoadSymbolCatalog  = errors.New("failed to load symbol catalog")
	ErrInvalidRequestBody         = errors.New("invalid request body")
)
