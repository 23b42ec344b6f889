package model

import "time"

// Method identifies which model produced a forecast.
type Method string

const (
	MethodHoltWinters    Method = "holt_winters"
	MethodLinearSeasonal Method = "linear_seasonal"
)

// Trend is a categorical summary of price direction. Weekly buckets use the
// Up/Down/Stable vocabulary; overall statistics use Increasing/Decreasing/Stable.
type Trend string

const (
	TrendUp         Trend = "Up"
	TrendDown       Trend = "Down"
	TrendStable     Trend = "Stable"
	TrendIncreasing Trend = "Increasing"
	TrendDecreasing Trend = "Decreasing"
)

// ForecastPoint is a single-day forecast with uncertainty bounds.
// Invariant: Lower <= Expected <= Upper. Values are rounded to 2 decimals.
type ForecastPoint struct {
	Date     time.Time `json:"date"`
	Expected float64   `json:"expected"`
	Lower    float64   `json:"lower"`
	Upper    float64   `json:"upper"`
}

// WeekBucket groups up to 7 consecutive daily forecasts into a calendar week.
type WeekBucket struct {
	WeekIndex  int             `json:"week_number"`
	MonthIndex int             `json:"month"`
	Label      string          `json:"week_label"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Average    float64         `json:"average_forecast"`
	Min        float64         `json:"min_forecast"`
	Max        float64         `json:"max_forecast"`
	Trend      Trend           `json:"trend"`
	Days       []ForecastPoint `json:"daily_forecasts"`
}

// OverallStatistics summarizes a full forecast period.
// ChangePercent is reported as 0 when StartingValue is 0.
type OverallStatistics struct {
	StartingValue float64 `json:"starting_value"`
	EndingValue   float64 `json:"ending_value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Trend         Trend   `json:"overall_trend"`
	Average       float64 `json:"average"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
}

// MonthSummary condenses a 30-day slice of an extended forecast.
type MonthSummary struct {
	Label   string  `json:"month"`
	Average float64 `json:"average_forecast"`
	Days    int     `json:"forecast_count"`
}
