package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Scraper  ScraperConfig  `yaml:"scraper"`
}

// DatabaseConfig holds local SQLite settings.
type DatabaseConfig struct {
	Path        string        `yaml:"path"         env:"DATABASE_PATH"         env-default:"data/socialcapital.db"`
	BusyTimeout time.Duration `yaml:"busy_timeout" env:"DATABASE_BUSY_TIMEOUT" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ScoringConfig holds scoring model parameters.
type ScoringConfig struct {
	// WarmthTauDays is the exponential-decay time constant: warmth halves
	// roughly every tau*ln2 days without new interactions.
	WarmthTauDays float64 `yaml:"warmth_tau_days" env:"SCORING_WARMTH_TAU_DAYS" env-default:"60"`
	// SearchLimit caps full-enumeration queries (taxonomy set computations
	// scan every contact; the engine is not built for huge datasets).
	SearchLimit int `yaml:"search_limit" env:"SCORING_SEARCH_LIMIT" env-default:"100000"`
	// ReminderAfterHours is the default follow-up delay when an interaction
	// requests a reminder without an explicit due date.
	ReminderAfterHours int `yaml:"reminder_after_hours" env:"SCORING_REMINDER_AFTER_HOURS" env-default:"0"`
}

// ScraperConfig holds public-profile fetch settings.
type ScraperConfig struct {
	Timeout   time.Duration `yaml:"timeout"    env:"SCRAPER_TIMEOUT"    env-default:"10s"`
	UserAgent string        `yaml:"user_agent" env:"SCRAPER_USER_AGENT" env-default:"socialcapital/1.0"`
}
