package config

import "fmt"

// Validate checks cross-field constraints that tag defaults cannot express.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout must not be negative")
	}
	if c.Scoring.WarmthTauDays <= 0 {
		return fmt.Errorf("scoring.warmth_tau_days must be positive, got %v", c.Scoring.WarmthTauDays)
	}
	if c.Scoring.SearchLimit <= 0 {
		return fmt.Errorf("scoring.search_limit must be positive, got %d", c.Scoring.SearchLimit)
	}
	if c.Scoring.ReminderAfterHours < 0 {
		return fmt.Errorf("scoring.reminder_after_hours must not be negative, got %d", c.Scoring.ReminderAfterHours)
	}
	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be positive, got %v", c.Scraper.Timeout)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
