package forecast

import (
	"fmt"

	"AgriForecast/internal/model"
)

const (
	// seasonalHorizon is the horizon beyond which the linear model layers a
	// day-of-week seasonal adjustment on top of the trend line.
	seasonalHorizon = 30

	// zScore for ~95% uncertainty bands.
	zScore = 1.96
)

// LinearModel is the always-available fallback: an ordinary least squares
// trend over the prepared series, extrapolated forward. For horizons beyond
// seasonalHorizon it superimposes day-of-week mean deviations, ramped in by
// distance from the last observation. Uncertainty bands widen monotonically
// with forecast distance.
type LinearModel struct{}

func (m *LinearModel) Name() model.Method { return model.MethodLinearSeasonal }

func (m *LinearModel) FitAndExtrapolate(s model.Series, horizon int) ([]model.ForecastPoint, error) {
	n := s.Len()
	if n < 2 {
		return nil, fmt.Errorf("linear fit %q: need at least 2 observations, have %d: %w",
			s.Commodity, n, ErrInsufficientData)
	}

	prices := s.Prices()
	slope, intercept := leastSquares(prices)

	// Residuals around the fitted line drive both the band width and the
	// seasonal deviations.
	residuals := make([]float64, n)
	for t, p := range prices {
		residuals[t] = p - (intercept + slope*float64(t))
	}
	band := stddev(residuals, mean(residuals))
	if floor := 0.01 * mean(prices); band < floor {
		band = floor
	}
	if band == 0 {
		band = 0.01
	}

	seasonal := weekdayDeviations(s.Observations, residuals)
	lastDate := s.LastDate()

	points := make([]model.ForecastPoint, 0, horizon)
	for step := 1; step <= horizon; step++ {
		date := lastDate.AddDate(0, 0, step)
		expected := intercept + slope*float64(n-1+step)

		if horizon > seasonalHorizon {
			ramp := float64(step) / float64(seasonalHorizon)
			if ramp > 1 {
				ramp = 1
			}
			expected += seasonal[int(date.Weekday())] * ramp
		}

		width := zScore * band * (1 + float64(step)/float64(seasonalHorizon))
		points = append(points, newPoint(date, expected, expected-width, expected+width))
	}
	return points, nil
}

// leastSquares fits price = intercept + slope*t over t = 0..n-1.
func leastSquares(prices []float64) (slope, intercept float64) {
	n := float64(len(prices))
	var sumX, sumY, sumXY, sumXX float64
	for t, p := range prices {
		x := float64(t)
		sumX += x
		sumY += p
		sumXY += x * p
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// weekdayDeviations averages the trend residuals per day of week, giving a
// deterministic periodic adjustment for longer horizons.
func weekdayDeviations(obs []model.Observation, residuals []float64) [7]float64 {
	var sums, counts [7]float64
	for i, o := range obs {
		wd := int(o.Date.Weekday())
		sums[wd] += residuals[i]
		counts[wd]++
	}
	var devs [7]float64
	for wd := range devs {
		if counts[wd] > 0 {
			devs[wd] = sums[wd] / counts[wd]
		}
	}
	return devs
}

var _ Model = (*LinearModel)(nil)
