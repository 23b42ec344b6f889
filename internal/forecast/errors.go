package forecast

import "errors"

// Error taxonomy surfaced to callers. Internal model fitting failures are
// never surfaced; they trigger the fallback model instead.
var (
	// ErrNotFound means the requested commodity is not in the catalog.
	ErrNotFound = errors.New("commodity not found")

	// ErrInvalidRange means the requested horizon is outside the allowed
	// bounds for the requested granularity.
	ErrInvalidRange = errors.New("horizon out of range")

	// ErrInsufficientData means the series is empty or too short to fit.
	ErrInsufficientData = errors.New("insufficient data")
)
