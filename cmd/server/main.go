package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"AgriForecast/internal/api"
	"AgriForecast/internal/config"
	"AgriForecast/internal/dataset"
	"AgriForecast/internal/forecast"
	"AgriForecast/internal/recorder"
	"AgriForecast/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AgriForecast starting...")

	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] no .env file loaded: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load dataset
	src, err := dataset.NewCSVSource(cfg.Dataset.CSVPath)
	if err != nil {
		log.Fatalf("[FATAL] load dataset: %v", err)
	}

	// Init engine
	eng := forecast.NewEngine(src, forecast.Params{
		OutlierSigma:      cfg.Forecast.OutlierSigma,
		PrimaryMinHistory: cfg.Forecast.PrimaryMinHistory,
		TrendTolerancePct: cfg.Forecast.TrendTolerancePct,
		WeeksPerMonth:     cfg.Forecast.WeeksPerMonth,
	})

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, src, eng)
	if err := sched.Register(cfg.Dataset.ReloadCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: warm the catalog on start
	if os.Getenv("WARM_ON_START") == "true" {
		log.Println("[INFO] WARM_ON_START enabled, running warm pass now")
		go sched.WarmPass()
	}

	// Start HTTP server
	app := api.NewApp(eng, src, rec)
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Printf("[WARN] fiber server stopped: %v", err)
		}
	}()
	log.Printf("[INFO] AgriForecast listening on :%s", cfg.Server.Port)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("[WARN] error during shutdown: %v", err)
	}
	log.Println("[INFO] AgriForecast stopped")
}
