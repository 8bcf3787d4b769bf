package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Market     MarketConfig     `yaml:"market"`
	GridStatus GridStatusConfig `yaml:"gridstatus"`
	Recorder   RecorderConfig   `yaml:"recorder"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	Env         string   `yaml:"env"` // "development" or "production"
	CORSOrigins []string `yaml:"cors_origins"`
}

type MarketConfig struct {
	// ReferenceDate is the delivery date (YYYY-MM-DD). Empty means
	// yesterday, matching the D-1 data strategy.
	ReferenceDate string `yaml:"reference_date"`
	// StartHour is the bidding-day starting hour (UTC). Default 10.
	StartHour int `yaml:"start_hour"`
	// CutoffHour closes the bidding window (UTC). Default 11.
	CutoffHour int `yaml:"cutoff_hour"`
	// BatchLimit caps one bulk bid submission. Default 10.
	BatchLimit int `yaml:"batch_limit"`
}

type GridStatusConfig struct {
	BaseURL         string `yaml:"base_url"`
	APIKey          string `yaml:"api_key"`
	DayAheadDataset string `yaml:"day_ahead_dataset"`
	RealTimeDataset string `yaml:"real_time_dataset"`
	LocationType    string `yaml:"location_type"`
}

type RecorderConfig struct {
	// SQLitePath enables the SQLite audit recorder when non-empty.
	SQLitePath string `yaml:"sqlite_path"`
}

// Load reads the YAML config, applies environment overrides and defaults,
// and validates the result. An empty path yields a default config.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, err
		}
	}
	c.applyDefaults()
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if c.Market.StartHour == 0 {
		c.Market.StartHour = 10
	}
	if c.Market.CutoffHour == 0 {
		c.Market.CutoffHour = 11
	}
	if c.Market.BatchLimit == 0 {
		c.Market.BatchLimit = 10
	}
	if c.GridStatus.DayAheadDataset == "" {
		c.GridStatus.DayAheadDataset = "pjm_lmp_day_ahead_hourly"
	}
	if c.GridStatus.RealTimeDataset == "" {
		c.GridStatus.RealTimeDataset = "pjm_lmp_real_time_5_min"
	}
	if c.GridStatus.LocationType == "" {
		c.GridStatus.LocationType = "HUB"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("GRIDSTATUS_API_KEY"); v != "" {
		c.GridStatus.APIKey = v
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Market.StartHour < 0 || c.Market.StartHour > 23 {
		return fmt.Errorf("market.start_hour must be 0-23, got %d", c.Market.StartHour)
	}
	if c.Market.CutoffHour < 0 || c.Market.CutoffHour > 23 {
		return fmt.Errorf("market.cutoff_hour must be 0-23, got %d", c.Market.CutoffHour)
	}
	if c.Market.StartHour > c.Market.CutoffHour {
		return fmt.Errorf("market.start_hour %d is after cutoff_hour %d", c.Market.StartHour, c.Market.CutoffHour)
	}
	if c.Market.BatchLimit < 1 {
		return fmt.Errorf("market.batch_limit must be at least 1, got %d", c.Market.BatchLimit)
	}
	if c.Market.ReferenceDate != "" {
		if _, err := time.Parse("2006-01-02", c.Market.ReferenceDate); err != nil {
			return fmt.Errorf("market.reference_date invalid: %w", err)
		}
	}
	return nil
}

// DeliveryDate resolves the configured reference date. Empty falls back to
// yesterday UTC (D-1: the most recent day with a complete real-time series).
func (c *Config) DeliveryDate() time.Time {
	if c.Market.ReferenceDate != "" {
		t, _ := time.Parse("2006-01-02", c.Market.ReferenceDate)
		return t
	}
	now := time.Now().UTC()
	y, m, d := now.AddDate(0, 0, -1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}
