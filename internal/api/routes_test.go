package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"AgriForecast/internal/forecast"
	"AgriForecast/internal/model"
	"AgriForecast/internal/recorder"
)

type stubSource struct {
	series map[string]model.Series
}

func (s *stubSource) Series(name string) (model.Series, error) {
	if series, ok := s.series[name]; ok {
		return series, nil
	}
	return model.Series{}, fmt.Errorf("commodity %q: %w", name, forecast.ErrNotFound)
}

func (s *stubSource) Commodities() []string {
	names := make([]string, 0, len(s.series))
	for name := range s.series {
		names = append(names, name)
	}
	return names
}

func newTestApp() *fiber.App {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]model.Observation, 120)
	for i := range obs {
		obs[i] = model.Observation{
			Date:  base.AddDate(0, 0, i),
			Price: 50 + float64(i)*0.05,
		}
	}
	src := &stubSource{series: map[string]model.Series{
		"rice": {Commodity: "rice", Observations: obs},
	}}
	eng := forecast.NewEngine(src, forecast.Params{})
	return NewApp(eng, src, recorder.NewNoopRecorder())
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestForecastRoute_OK(t *testing.T) {
	app := newTestApp()

	resp := get(t, app, "/forecast/rice/7")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Commodity string                `json:"commodity"`
		Method    string                `json:"method"`
		Forecast  []model.ForecastPoint `json:"forecast"`
	}
	decode(t, resp, &body)
	if body.Commodity != "rice" {
		t.Errorf("commodity = %q", body.Commodity)
	}
	if len(body.Forecast) != 7 {
		t.Errorf("forecast has %d points, want 7", len(body.Forecast))
	}
	if body.Method == "" {
		t.Error("method field missing")
	}
}

func TestForecastRoute_InvalidRange(t *testing.T) {
	app := newTestApp()

	resp := get(t, app, "/forecast/rice/400")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestForecastRoute_UnknownCommodity(t *testing.T) {
	app := newTestApp()

	resp := get(t, app, "/forecast/unicorn_grain/7")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestWeeklyForecastRoute(t *testing.T) {
	app := newTestApp()

	resp := get(t, app, "/forecast-weekly/rice/3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		TotalWeeks int                     `json:"total_weeks"`
		Weeks      []model.WeekBucket      `json:"weekly_forecasts"`
		Overall    model.OverallStatistics `json:"overall_statistics"`
	}
	decode(t, resp, &body)
	if body.TotalWeeks != 13 {
		t.Errorf("total_weeks = %d, want 13", body.TotalWeeks)
	}
	if len(body.Weeks) == 0 {
		t.Fatal("no weekly forecasts returned")
	}
	if body.Overall.StartingValue != body.Weeks[0].Average {
		t.Error("overall starting value does not match first bucket average")
	}
}

func TestExtendedForecastRoute(t *testing.T) {
	app := newTestApp()

	resp := get(t, app, "/extended-forecast/rice/2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Days    int                  `json:"forecast_period_days"`
		Monthly []model.MonthSummary `json:"monthly_summary"`
	}
	decode(t, resp, &body)
	if body.Days != 60 {
		t.Errorf("forecast_period_days = %d, want 60", body.Days)
	}
	if len(body.Monthly) != 2 {
		t.Errorf("monthly_summary has %d entries, want 2", len(body.Monthly))
	}
}

func TestCommoditiesRoute(t *testing.T) {
	app := newTestApp()

	resp := get(t, app, "/commodities")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Commodities []string `json:"commodities"`
	}
	decode(t, resp, &body)
	if len(body.Commodities) != 1 || body.Commodities[0] != "rice" {
		t.Errorf("commodities = %v", body.Commodities)
	}
}

func TestHistoryRoute(t *testing.T) {
	app := newTestApp()

	resp := get(t, app, "/history/rice")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Commodity    string              `json:"commodity"`
		Observations []model.Observation `json:"observations"`
	}
	decode(t, resp, &body)
	if len(body.Observations) != 120 {
		t.Errorf("observations = %d, want 120", len(body.Observations))
	}
}

func TestHealthRoute(t *testing.T) {
	app := newTestApp()

	resp := get(t, app, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
