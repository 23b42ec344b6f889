package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"AgriForecast/internal/model"
)

// Model fits a prepared series and extrapolates daily forecast points.
// Implementations must be deterministic and must not mutate the series.
type Model interface {
	Name() model.Method
	FitAndExtrapolate(s model.Series, horizon int) ([]model.ForecastPoint, error)
}

// SeriesSource provides per-commodity historical series. Lookups are case-
// and whitespace-insensitive; unknown commodities fail with ErrNotFound.
type SeriesSource interface {
	Series(name string) (model.Series, error)
	Commodities() []string
}

// round2 rounds to 2 decimal places for external consumption. Internal model
// arithmetic stays in full float64 precision.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// newPoint builds a rounded forecast point, clamping bounds so that
// lower <= expected <= upper and nothing drops below zero.
func newPoint(date time.Time, expected, lower, upper float64) model.ForecastPoint {
	if expected < 0 {
		expected = 0
	}
	if lower < 0 {
		lower = 0
	}
	if lower > expected {
		lower = expected
	}
	if upper < expected {
		upper = expected
	}
	return model.ForecastPoint{
		Date:     date,
		Expected: round2(expected),
		Lower:    round2(lower),
		Upper:    round2(upper),
	}
}
