package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"AgriForecast/internal/forecast"
	"AgriForecast/internal/recorder"
)

// NewApp builds the Fiber application with middleware, a centralized JSON
// error handler, and all routes registered.
func NewApp(eng *forecast.Engine, src forecast.SeriesSource, rec recorder.Recorder) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "agri-forecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "agri-forecast",
		})
	})

	RegisterRoutes(app, eng, src, rec)
	return app
}
