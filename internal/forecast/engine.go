package forecast

import (
	"fmt"
	"log"

	"AgriForecast/internal/model"
)

// Horizon bounds per granularity.
const (
	MaxDailyDays      = 365
	MaxWeeklyMonths   = 12
	MaxExtendedMonths = 24

	daysPerMonth = 30

	// History windows: daily/weekly forecasts fit on the last year of
	// observations, extended forecasts on the last two.
	dailyWindow    = 365
	extendedWindow = 730

	// Extended forecasts need at least a month of history.
	minExtendedHistory = 30
)

// Params tunes the engine. Zero values are replaced by defaults.
type Params struct {
	OutlierSigma      float64 // outlier cutoff in standard deviations
	PrimaryMinHistory int     // observations required before the primary model is attempted
	TrendTolerancePct float64 // relative band (percent) within which a trend is Stable
	WeeksPerMonth     int     // weeks mapped to one month index
}

func (p *Params) applyDefaults() {
	if p.OutlierSigma == 0 {
		p.OutlierSigma = 3
	}
	if p.PrimaryMinHistory == 0 {
		p.PrimaryMinHistory = 28
	}
	if p.TrendTolerancePct == 0 {
		p.TrendTolerancePct = 1
	}
	if p.WeeksPerMonth == 0 {
		p.WeeksPerMonth = 4
	}
}

// Engine is the stateless forecasting core: it prepares the series, selects
// a model, and derives aggregates and statistics. Safe for concurrent use;
// every call works on its own copy of the data.
type Engine struct {
	Source   SeriesSource
	Primary  Model
	Fallback Model
	Params   Params
}

// NewEngine wires the engine with the standard primary/fallback pair.
func NewEngine(src SeriesSource, p Params) *Engine {
	p.applyDefaults()
	return &Engine{
		Source:   src,
		Primary:  &HoltWintersModel{MinHistory: p.PrimaryMinHistory},
		Fallback: &LinearModel{},
		Params:   p,
	}
}

// DailyResult is the product of a daily forecast call.
type DailyResult struct {
	Commodity string                `json:"commodity"`
	Method    model.Method          `json:"method"`
	Points    []model.ForecastPoint `json:"forecast"`
}

// WeeklyResult is the product of a weekly forecast call.
type WeeklyResult struct {
	Commodity string                  `json:"commodity"`
	Months    int                     `json:"forecast_period_months"`
	Method    model.Method            `json:"method"`
	Weeks     []model.WeekBucket      `json:"weekly_forecasts"`
	Overall   model.OverallStatistics `json:"overall_statistics"`
}

// ExtendedResult adds the long-range monthly summary to a weekly result.
type ExtendedResult struct {
	WeeklyResult
	Days           int                  `json:"forecast_period_days"`
	MonthlySummary []model.MonthSummary `json:"monthly_summary"`
}

// Daily forecasts the next `days` (1..365) daily prices for a commodity.
func (e *Engine) Daily(commodity string, days int) (*DailyResult, error) {
	if days < 1 || days > MaxDailyDays {
		return nil, fmt.Errorf("daily forecast for %q: %d days (allowed 1..%d): %w",
			commodity, days, MaxDailyDays, ErrInvalidRange)
	}

	prepared, err := e.preparedSeries(commodity, dailyWindow)
	if err != nil {
		return nil, err
	}

	points, method, err := e.run(prepared, days)
	if err != nil {
		return nil, err
	}
	return &DailyResult{Commodity: prepared.Commodity, Method: method, Points: points}, nil
}

// Weekly forecasts `months` (1..12) ahead and aggregates into week buckets
// with overall statistics.
func (e *Engine) Weekly(commodity string, months int) (*WeeklyResult, error) {
	if months < 1 || months > MaxWeeklyMonths {
		return nil, fmt.Errorf("weekly forecast for %q: %d months (allowed 1..%d): %w",
			commodity, months, MaxWeeklyMonths, ErrInvalidRange)
	}

	prepared, err := e.preparedSeries(commodity, dailyWindow)
	if err != nil {
		return nil, err
	}
	return e.bucketed(prepared, months)
}

// Extended forecasts `months` (1..24) ahead over a longer history window and
// additionally reports 30-day summaries.
func (e *Engine) Extended(commodity string, months int) (*ExtendedResult, error) {
	if months < 1 || months > MaxExtendedMonths {
		return nil, fmt.Errorf("extended forecast for %q: %d months (allowed 1..%d): %w",
			commodity, months, MaxExtendedMonths, ErrInvalidRange)
	}

	prepared, err := e.preparedSeries(commodity, extendedWindow)
	if err != nil {
		return nil, err
	}
	if prepared.Len() < minExtendedHistory {
		return nil, fmt.Errorf("extended forecast for %q: %d observations, need %d: %w",
			commodity, prepared.Len(), minExtendedHistory, ErrInsufficientData)
	}

	weekly, err := e.bucketed(prepared, months)
	if err != nil {
		return nil, err
	}

	days := months * daysPerMonth
	points := make([]model.ForecastPoint, 0, days)
	for _, b := range weekly.Weeks {
		points = append(points, b.Days...)
	}

	return &ExtendedResult{
		WeeklyResult:   *weekly,
		Days:           days,
		MonthlySummary: SummarizeMonthly(points),
	}, nil
}

func (e *Engine) preparedSeries(commodity string, window int) (model.Series, error) {
	series, err := e.Source.Series(commodity)
	if err != nil {
		return model.Series{}, err
	}
	return Prepare(series, window, e.Params.OutlierSigma)
}

// bucketed runs the model for months*30 days and aggregates the result.
func (e *Engine) bucketed(prepared model.Series, months int) (*WeeklyResult, error) {
	points, method, err := e.run(prepared, months*daysPerMonth)
	if err != nil {
		return nil, err
	}

	weeks, err := AggregateWeekly(points, e.Params.WeeksPerMonth, e.Params.TrendTolerancePct)
	if err != nil {
		return nil, err
	}
	overall, err := Summarize(weeks, e.Params.TrendTolerancePct)
	if err != nil {
		return nil, err
	}

	return &WeeklyResult{
		Commodity: prepared.Commodity,
		Months:    months,
		Method:    method,
		Weeks:     weeks,
		Overall:   overall,
	}, nil
}

// run attempts the primary model when the history permits and degrades to
// the fallback on any internal fitting failure. Primary errors are logged
// but never surfaced.
func (e *Engine) run(prepared model.Series, horizon int) ([]model.ForecastPoint, model.Method, error) {
	if e.Primary != nil && prepared.Len() >= e.Params.PrimaryMinHistory {
		points, err := e.Primary.FitAndExtrapolate(prepared, horizon)
		if err == nil {
			return points, e.Primary.Name(), nil
		}
		log.Printf("[WARN] primary model failed for %q, using fallback: %v", prepared.Commodity, err)
	}

	points, err := e.Fallback.FitAndExtrapolate(prepared, horizon)
	if err != nil {
		return nil, "", err
	}
	return points, e.Fallback.Name(), nil
}
