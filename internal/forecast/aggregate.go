package forecast

import (
	"fmt"
	"math"

	"AgriForecast/internal/model"
)

const daysPerWeek = 7

// AggregateWeekly partitions daily forecasts into contiguous 7-day buckets
// (the last bucket may be short). Average/min/max are computed over member
// expected values; the per-week trend compares the first and last member
// against the tolerance band (percent).
func AggregateWeekly(points []model.ForecastPoint, weeksPerMonth int, tolerancePct float64) ([]model.WeekBucket, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("weekly aggregation: %w", ErrInsufficientData)
	}
	if weeksPerMonth < 1 {
		weeksPerMonth = 4
	}

	buckets := make([]model.WeekBucket, 0, (len(points)+daysPerWeek-1)/daysPerWeek)
	for start := 0; start < len(points); start += daysPerWeek {
		end := start + daysPerWeek
		if end > len(points) {
			end = len(points)
		}
		days := points[start:end]

		sum := 0.0
		min := math.Inf(1)
		max := math.Inf(-1)
		for _, p := range days {
			sum += p.Expected
			if p.Expected < min {
				min = p.Expected
			}
			if p.Expected > max {
				max = p.Expected
			}
		}

		week := len(buckets) + 1
		month := (week-1)/weeksPerMonth + 1
		buckets = append(buckets, model.WeekBucket{
			WeekIndex:  week,
			MonthIndex: month,
			Label:      fmt.Sprintf("Week %d (Month %d)", week, month),
			StartDate:  days[0].Date,
			EndDate:    days[len(days)-1].Date,
			Average:    round2(sum / float64(len(days))),
			Min:        round2(min),
			Max:        round2(max),
			Trend:      trendLabel(days[0].Expected, days[len(days)-1].Expected, tolerancePct, model.TrendUp, model.TrendDown),
			Days:       days,
		})
	}
	return buckets, nil
}

// Summarize derives overall-period statistics from ordered weekly buckets.
// ChangePercent is 0 (not an error) when the starting value is 0.
func Summarize(buckets []model.WeekBucket, tolerancePct float64) (model.OverallStatistics, error) {
	if len(buckets) == 0 {
		return model.OverallStatistics{}, fmt.Errorf("summarize: %w", ErrInsufficientData)
	}

	start := buckets[0].Average
	end := buckets[len(buckets)-1].Average

	sum := 0.0
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, b := range buckets {
		sum += b.Average
		if b.Average < min {
			min = b.Average
		}
		if b.Average > max {
			max = b.Average
		}
	}

	change := end - start
	changePct := 0.0
	if start != 0 {
		changePct = change / start * 100
	}

	return model.OverallStatistics{
		StartingValue: round2(start),
		EndingValue:   round2(end),
		Change:        round2(change),
		ChangePercent: round2(changePct),
		Trend:         trendLabel(start, end, tolerancePct, model.TrendIncreasing, model.TrendDecreasing),
		Average:       round2(sum / float64(len(buckets))),
		Min:           round2(min),
		Max:           round2(max),
	}, nil
}

// SummarizeMonthly condenses daily forecasts into 30-day summaries for
// extended forecasts.
func SummarizeMonthly(points []model.ForecastPoint) []model.MonthSummary {
	summaries := make([]model.MonthSummary, 0, (len(points)+daysPerMonth-1)/daysPerMonth)
	for start := 0; start < len(points); start += daysPerMonth {
		end := start + daysPerMonth
		if end > len(points) {
			end = len(points)
		}
		group := points[start:end]

		sum := 0.0
		for _, p := range group {
			sum += p.Expected
		}
		summaries = append(summaries, model.MonthSummary{
			Label: fmt.Sprintf("%s to %s",
				group[0].Date.Format("2006-01-02"),
				group[len(group)-1].Date.Format("2006-01-02")),
			Average: round2(sum / float64(len(group))),
			Days:    len(group),
		})
	}
	return summaries
}

// trendLabel compares a start and end value against a relative tolerance
// band (percent). Values within the band are Stable. A zero start with a
// positive end counts as up; two zeros are Stable.
func trendLabel(start, end, tolerancePct float64, up, down model.Trend) model.Trend {
	if start == 0 {
		if end > 0 {
			return up
		}
		return model.TrendStable
	}
	pct := (end - start) / start * 100
	switch {
	case pct > tolerancePct:
		return up
	case pct < -tolerancePct:
		return down
	default:
		return model.TrendStable
	}
}
