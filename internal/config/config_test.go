package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point CONFIG_PATH away from any real config.yaml in the working
	// directory, then make the file minimal so defaults apply.
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/socialcapital.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, float64(60), cfg.Scoring.WarmthTauDays)
	assert.Equal(t, 100000, cfg.Scoring.SearchLimit)
	assert.Equal(t, 10*time.Second, cfg.Scraper.Timeout)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/test.db
log:
  level: debug
  format: text
scoring:
  warmth_tau_days: 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SCORING_SEARCH_LIMIT", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, float64(30), cfg.Scoring.WarmthTauDays)
	assert.Equal(t, 500, cfg.Scoring.SearchLimit)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Path: "x.db", BusyTimeout: time.Second},
		Log:      LogConfig{Level: "info", Format: "json"},
		Scoring:  ScoringConfig{WarmthTauDays: 60, SearchLimit: 100},
		Scraper:  ScraperConfig{Timeout: time.Second},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
		{"negative busy timeout", func(c *Config) { c.Database.BusyTimeout = -time.Second }},
		{"zero tau", func(c *Config) { c.Scoring.WarmthTauDays = 0 }},
		{"zero search limit", func(c *Config) { c.Scoring.SearchLimit = 0 }},
		{"negative reminder hours", func(c *Config) { c.Scoring.ReminderAfterHours = -1 }},
		{"zero scraper timeout", func(c *Config) { c.Scraper.Timeout = 0 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
