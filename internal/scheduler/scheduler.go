package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"AgriForecast/internal/dataset"
	"AgriForecast/internal/forecast"
)

// warmConcurrency bounds the number of parallel warm-pass forecasts.
const warmConcurrency = 4

// Scheduler reloads the dataset on a cron schedule and runs a warm pass over
// the catalog so data problems show up in the logs before callers hit them.
type Scheduler struct {
	Cron   *cron.Cron
	Source *dataset.CSVSource
	Engine *forecast.Engine
	Ctx    context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, src *dataset.CSVSource, eng *forecast.Engine) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Source: src,
		Engine: eng,
		Ctx:    ctx,
	}
}

// Register adds the dataset reload task.
func (s *Scheduler) Register(reloadCron string) error {
	if _, err := s.Cron.AddFunc(reloadCron, s.runReload); err != nil {
		return fmt.Errorf("register reload cron %q: %w", reloadCron, err)
	}
	return nil
}

// Start begins cron scheduling.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop halts cron scheduling.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) runReload() {
	log.Println("[INFO] dataset reload triggered")
	if err := s.Source.Reload(); err != nil {
		log.Printf("[WARN] dataset reload failed: %v", err)
		return
	}
	s.WarmPass()
}

// WarmPass runs a short forecast for every catalog entry concurrently and
// logs commodities whose series can no longer be fit.
func (s *Scheduler) WarmPass() {
	g, _ := errgroup.WithContext(s.Ctx)
	g.SetLimit(warmConcurrency)

	for _, name := range s.Source.Commodities() {
		name := name
		g.Go(func() error {
			if _, err := s.Engine.Daily(name, 7); err != nil {
				log.Printf("[WARN] warm pass: %q not forecastable: %v", name, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	log.Println("[INFO] warm pass completed")
}
