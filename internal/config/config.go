package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port" validate:"required"`
	} `yaml:"server"`
	Dataset struct {
		CSVPath    string `yaml:"csv_path" validate:"required"`
		ReloadCron string `yaml:"reload_cron" validate:"required"`
	} `yaml:"dataset"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Forecast struct {
		OutlierSigma      float64 `yaml:"outlier_sigma" validate:"gt=0"`
		PrimaryMinHistory int     `yaml:"primary_min_history" validate:"gte=14"`
		TrendTolerancePct float64 `yaml:"trend_tolerance_pct" validate:"gte=0"`
		WeeksPerMonth     int     `yaml:"weeks_per_month" validate:"gte=1"`
	} `yaml:"forecast"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATASET_CSV_PATH"); v != "" {
		cfg.Dataset.CSVPath = v
	}
	if v := os.Getenv("DATASET_RELOAD_CRON"); v != "" {
		cfg.Dataset.ReloadCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PRIMARY_MIN_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.PrimaryMinHistory = n
		}
	}

	// Defaults
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Dataset.CSVPath == "" {
		cfg.Dataset.CSVPath = "data/all_pricing_daily.csv"
	}
	if cfg.Dataset.ReloadCron == "" {
		cfg.Dataset.ReloadCron = "0 0 6 * * *"
	}
	if cfg.Forecast.OutlierSigma == 0 {
		cfg.Forecast.OutlierSigma = 3
	}
	if cfg.Forecast.PrimaryMinHistory == 0 {
		cfg.Forecast.PrimaryMinHistory = 28
	}
	if cfg.Forecast.TrendTolerancePct == 0 {
		cfg.Forecast.TrendTolerancePct = 1
	}
	if cfg.Forecast.WeeksPerMonth == 0 {
		cfg.Forecast.WeeksPerMonth = 4
	}

	return cfg, nil
}

// Validate checks field constraints via struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
