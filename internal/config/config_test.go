package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, "development", c.Server.Env)
	assert.False(t, c.IsProduction())
	assert.Equal(t, 10, c.Market.StartHour)
	assert.Equal(t, 11, c.Market.CutoffHour)
	assert.Equal(t, 10, c.Market.BatchLimit)
	assert.Equal(t, "pjm_lmp_day_ahead_hourly", c.GridStatus.DayAheadDataset)
	assert.Equal(t, "pjm_lmp_real_time_5_min", c.GridStatus.RealTimeDataset)
	assert.Equal(t, "HUB", c.GridStatus.LocationType)
	assert.Empty(t, c.Recorder.SQLitePath)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9090"
  env: production
  cors_origins:
    - https://example.com
market:
  reference_date: "2024-06-12"
  cutoff_hour: 12
recorder:
  sqlite_path: market.db
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Server.Port)
	assert.True(t, c.IsProduction())
	assert.Equal(t, []string{"https://example.com"}, c.Server.CORSOrigins)
	assert.Equal(t, 12, c.Market.CutoffHour)
	// Unset fields keep defaults.
	assert.Equal(t, 10, c.Market.StartHour)
	assert.Equal(t, "market.db", c.Recorder.SQLitePath)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), c.DeliveryDate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "7000")
	t.Setenv("API_ENV", "production")
	t.Setenv("GRIDSTATUS_API_KEY", "env-key-0123456789")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7000", c.Server.Port)
	assert.True(t, c.IsProduction())
	assert.Equal(t, "env-key-0123456789", c.GridStatus.APIKey)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"start hour out of range", func(c *Config) { c.Market.StartHour = -1 }},
		{"cutoff hour out of range", func(c *Config) { c.Market.CutoffHour = 24 }},
		{"start after cutoff", func(c *Config) { c.Market.StartHour = 12; c.Market.CutoffHour = 11 }},
		{"batch limit negative", func(c *Config) { c.Market.BatchLimit = -1 }},
		{"bad reference date", func(c *Config) { c.Market.ReferenceDate = "06/12/2024" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Load("")
			require.NoError(t, err)
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestDeliveryDateDefaultsToYesterday(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	got := c.DeliveryDate()
	now := time.Now().UTC()
	y, m, d := now.AddDate(0, 0, -1).Date()
	assert.Equal(t, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), got)
}
