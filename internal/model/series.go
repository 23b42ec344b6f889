package model

import "time"

// Observation is a single historical price record for one commodity.
type Observation struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Series holds chronologically ordered price observations for one commodity.
// A series is built per forecast call and never mutated afterwards.
type Series struct {
	Commodity    string
	Observations []Observation
}

// Len returns the number of observations in the series.
func (s Series) Len() int { return len(s.Observations) }

// LastDate returns the date of the final observation, or the zero time for an
// empty series.
func (s Series) LastDate() time.Time {
	if len(s.Observations) == 0 {
		return time.Time{}
	}
	return s.Observations[len(s.Observations)-1].Date
}

// Prices returns the price column as a fresh slice.
func (s Series) Prices() []float64 {
	prices := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		prices[i] = o.Price
	}
	return prices
}
