package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrTimeout            = errors.New("operation timed out")
	ErrContextCanceled    = errors.New("operation canceled via context")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Input Errors
	ErrMissingColumn = errors.New("required input column is missing")
	ErrInvalidDate   = errors.New("unparseable date value")
	ErrInvalidPrice  = errors.New("unparseable price value")

	// Pipeline Errors
	ErrUnsortedInput       = errors.New("records are not in ascending date order")
	ErrMixedTickers        = errors.New("records belong to more than one ticker")
	ErrPeriodCountMismatch = errors.New("monthly record count does not match expected period count")

	// Exchange Specific Errors
	ErrExchangeUnavailable  = errors.New("exchange API is unavailable")
	ErrConnectionFailed     = errors.New("failed to connect to the exchange")
	ErrRateLimited          = errors.New("API rate limit exceeded")
	ErrAuthenticationFailed = errors.New("exchange authentication failed (check API keys)")
	ErrInvalidAPIKeys       = errors.New("invalid API keys or permissions")

	// Storage Errors
	ErrDBConnection = errors.New("database connection error")
	ErrQueryFailed  = errors.New("database query failed")
	ErrWriteFailed  = errors.New("failed to persist monthly records")
)
