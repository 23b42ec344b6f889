package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"AgriForecast/internal/model"
)

// Prepare normalizes raw observations into a fit-ready series: duplicate
// dates are collapsed by averaging their prices, observations are sorted
// chronologically, the series is trimmed to the most recent `window`
// observations (0 = keep all), and prices beyond `sigma` standard deviations
// from the mean are discarded. If outlier removal would leave fewer than 2
// points, the untrimmed series is kept instead.
//
// The input series is never mutated.
func Prepare(s model.Series, window int, sigma float64) (model.Series, error) {
	if s.Len() == 0 {
		return model.Series{}, fmt.Errorf("prepare %q: %w", s.Commodity, ErrInsufficientData)
	}

	// Collapse duplicate dates by averaging.
	type acc struct {
		sum float64
		n   int
	}
	byDate := make(map[time.Time]*acc, s.Len())
	for _, o := range s.Observations {
		day := time.Date(o.Date.Year(), o.Date.Month(), o.Date.Day(), 0, 0, 0, 0, time.UTC)
		a, ok := byDate[day]
		if !ok {
			a = &acc{}
			byDate[day] = a
		}
		a.sum += o.Price
		a.n++
	}

	obs := make([]model.Observation, 0, len(byDate))
	for day, a := range byDate {
		obs = append(obs, model.Observation{Date: day, Price: a.sum / float64(a.n)})
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })

	if window > 0 && len(obs) > window {
		obs = obs[len(obs)-window:]
	}

	filtered := removeOutliers(obs, sigma)
	if len(filtered) < 2 {
		filtered = obs
	}

	return model.Series{Commodity: s.Commodity, Observations: filtered}, nil
}

// removeOutliers drops observations whose price lies beyond sigma standard
// deviations from the mean.
func removeOutliers(obs []model.Observation, sigma float64) []model.Observation {
	if sigma <= 0 || len(obs) < 3 {
		return obs
	}

	prices := make([]float64, len(obs))
	for i, o := range obs {
		prices[i] = o.Price
	}
	m := mean(prices)
	sd := stddev(prices, m)
	if sd == 0 {
		return obs
	}

	lo, hi := m-sigma*sd, m+sigma*sd
	kept := make([]model.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Price >= lo && o.Price <= hi {
			kept = append(kept, o)
		}
	}
	return kept
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev computes the sample standard deviation around the given mean.
func stddev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
