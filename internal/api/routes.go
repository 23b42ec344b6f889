package api

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"AgriForecast/internal/forecast"
	"AgriForecast/internal/recorder"
)

// historyLimit caps the number of observations returned by the history route.
const historyLimit = 1000

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, eng *forecast.Engine, src forecast.SeriesSource, rec recorder.Recorder) {
	app.Get("/commodities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"commodities": src.Commodities()})
	})

	app.Get("/history/:commodity", func(c *fiber.Ctx) error {
		series, err := src.Series(c.Params("commodity"))
		if err != nil {
			return mapError(err)
		}
		obs := series.Observations
		if len(obs) > historyLimit {
			obs = obs[len(obs)-historyLimit:]
		}
		return c.JSON(fiber.Map{
			"commodity":    series.Commodity,
			"observations": obs,
		})
	})

	app.Get("/forecast/:commodity/:days", func(c *fiber.Ctx) error {
		days, err := c.ParamsInt("days")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "days must be an integer")
		}

		started := time.Now()
		res, err := eng.Daily(c.Params("commodity"), days)
		if err != nil {
			return mapError(err)
		}
		record(rec, &recorder.RunEvent{
			Commodity:     res.Commodity,
			Granularity:   "daily",
			Horizon:       days,
			Method:        string(res.Method),
			Points:        len(res.Points),
			StartExpected: res.Points[0].Expected,
			EndExpected:   res.Points[len(res.Points)-1].Expected,
			Duration:      time.Since(started),
		})
		return c.JSON(res)
	})

	app.Get("/forecast-weekly/:commodity/:months", func(c *fiber.Ctx) error {
		months, err := c.ParamsInt("months")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "months must be an integer")
		}

		started := time.Now()
		res, err := eng.Weekly(c.Params("commodity"), months)
		if err != nil {
			return mapError(err)
		}
		record(rec, weeklyEvent(res, "weekly", time.Since(started)))
		return c.JSON(fiber.Map{
			"commodity":              res.Commodity,
			"forecast_period_months": res.Months,
			"total_weeks":            len(res.Weeks),
			"weekly_forecasts":       res.Weeks,
			"overall_statistics":     res.Overall,
			"method":                 res.Method,
		})
	})

	app.Get("/extended-forecast/:commodity/:months", func(c *fiber.Ctx) error {
		months, err := c.ParamsInt("months")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "months must be an integer")
		}

		started := time.Now()
		res, err := eng.Extended(c.Params("commodity"), months)
		if err != nil {
			return mapError(err)
		}
		record(rec, weeklyEvent(&res.WeeklyResult, "extended", time.Since(started)))
		return c.JSON(fiber.Map{
			"commodity":              res.Commodity,
			"forecast_period_months": res.Months,
			"forecast_period_days":   res.Days,
			"total_weeks":            len(res.Weeks),
			"weekly_forecasts":       res.Weeks,
			"overall_statistics":     res.Overall,
			"monthly_summary":        res.MonthlySummary,
			"method":                 res.Method,
		})
	})
}

func weeklyEvent(res *forecast.WeeklyResult, granularity string, d time.Duration) *recorder.RunEvent {
	points := 0
	for _, w := range res.Weeks {
		points += len(w.Days)
	}
	return &recorder.RunEvent{
		Commodity:     res.Commodity,
		Granularity:   granularity,
		Horizon:       res.Months,
		Method:        string(res.Method),
		Points:        points,
		StartExpected: res.Overall.StartingValue,
		EndExpected:   res.Overall.EndingValue,
		Duration:      d,
	}
}

func record(rec recorder.Recorder, evt *recorder.RunEvent) {
	if err := rec.RecordRun(evt); err != nil {
		log.Printf("[WARN] record forecast run: %v", err)
	}
}

// mapError translates the engine's error taxonomy into HTTP statuses.
func mapError(err error) error {
	switch {
	case errors.Is(err, forecast.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, forecast.ErrInvalidRange):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, forecast.ErrInsufficientData):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "forecast failed")
	}
}
