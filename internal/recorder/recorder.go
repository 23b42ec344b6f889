package recorder

import "time"

// RunEvent holds the audit data for a single forecast call.
type RunEvent struct {
	Commodity     string
	Granularity   string // "daily", "weekly" or "extended"
	Horizon       int    // days or months, per granularity
	Method        string
	Points        int
	StartExpected float64
	EndExpected   float64
	Duration      time.Duration
}

// Recorder persists forecast runs for later analysis.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	Close() error
}
