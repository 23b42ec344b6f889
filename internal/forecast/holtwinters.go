package forecast

import (
	"fmt"
	"math"

	"AgriForecast/internal/model"
)

const seasonLength = 7 // weekly seasonality over daily observations

// HoltWintersModel is the primary method: additive triple exponential
// smoothing with a weekly seasonal component and residual-based confidence
// intervals that widen with forecast distance. It refuses to fit short
// histories and fails explicitly on degenerate smoothing state; callers are
// expected to fall back to the linear model on any error.
type HoltWintersModel struct {
	MinHistory int // minimum observations before a fit is attempted

	// Smoothing coefficients. Zero values are replaced by defaults.
	Alpha, Beta, Gamma float64
}

func (m *HoltWintersModel) Name() model.Method { return model.MethodHoltWinters }

func (m *HoltWintersModel) FitAndExtrapolate(s model.Series, horizon int) ([]model.ForecastPoint, error) {
	minHistory := m.MinHistory
	if minHistory < 2*seasonLength {
		minHistory = 2 * seasonLength
	}
	n := s.Len()
	if n < minHistory {
		return nil, fmt.Errorf("holt-winters %q: need at least %d observations, have %d",
			s.Commodity, minHistory, n)
	}

	alpha, beta, gamma := m.Alpha, m.Beta, m.Gamma
	if alpha == 0 {
		alpha = 0.35
	}
	if beta == 0 {
		beta = 0.05
	}
	if gamma == 0 {
		gamma = 0.15
	}

	prices := s.Prices()
	level, trend, season := initState(prices)

	// Smooth through the history, collecting one-step-ahead residuals after
	// the first two seasonal cycles have warmed the state up.
	var residuals []float64
	for t := 0; t < n; t++ {
		idx := t % seasonLength
		fitted := level + trend + season[idx]
		if t >= 2*seasonLength {
			residuals = append(residuals, prices[t]-fitted)
		}

		newLevel := alpha*(prices[t]-season[idx]) + (1-alpha)*(level+trend)
		newTrend := beta*(newLevel-level) + (1-beta)*trend
		season[idx] = gamma*(prices[t]-newLevel) + (1-gamma)*season[idx]
		level, trend = newLevel, newTrend

		if !finite(level) || !finite(trend) || !finite(season[idx]) {
			return nil, fmt.Errorf("holt-winters %q: smoothing diverged at t=%d", s.Commodity, t)
		}
	}

	sigma := stddev(residuals, mean(residuals))
	if !finite(sigma) {
		return nil, fmt.Errorf("holt-winters %q: degenerate residual variance", s.Commodity)
	}
	if floor := 0.01 * mean(prices); sigma < floor {
		sigma = floor
	}
	if sigma == 0 {
		sigma = 0.01
	}

	lastDate := s.LastDate()
	points := make([]model.ForecastPoint, 0, horizon)
	for h := 1; h <= horizon; h++ {
		expected := level + float64(h)*trend + season[(n+h-1)%seasonLength]
		if !finite(expected) {
			return nil, fmt.Errorf("holt-winters %q: non-finite forecast at h=%d", s.Commodity, h)
		}
		width := zScore * sigma * math.Sqrt(float64(h))
		points = append(points, newPoint(lastDate.AddDate(0, 0, h), expected, expected-width, expected+width))
	}
	return points, nil
}

// initState seeds level, trend and the seasonal profile from the first two
// cycles and the per-position deviations across all full cycles.
func initState(prices []float64) (level, trend float64, season []float64) {
	first := mean(prices[:seasonLength])
	second := mean(prices[seasonLength : 2*seasonLength])
	level = first
	trend = (second - first) / seasonLength

	season = make([]float64, seasonLength)
	cycles := len(prices) / seasonLength
	counts := make([]int, seasonLength)
	for c := 0; c < cycles; c++ {
		cycle := prices[c*seasonLength : (c+1)*seasonLength]
		cm := mean(cycle)
		for j, p := range cycle {
			season[j] += p - cm
			counts[j]++
		}
	}
	for j := range season {
		if counts[j] > 0 {
			season[j] /= float64(counts[j])
		}
	}
	return level, trend, season
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

var _ Model = (*HoltWintersModel)(nil)
