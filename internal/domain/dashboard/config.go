package dashboard

import (
	"errors"
	"fmt"
	"time"
)

// KeyHour is a time of day worth planning an outfit for.
type KeyHour struct {
	Hour  int    `yaml:"hour"`
	Label string `yaml:"label"`
}

// Config controls the dashboard layout and forecast caching.
type Config struct {
	KeyHours      []KeyHour     `yaml:"keyHours"`
	LookaheadDays int           `yaml:"lookaheadDays"`
	MaxUpcoming   int           `yaml:"maxUpcoming"`
	CacheTTL      time.Duration `yaml:"cacheTtl"`
	CacheKey      string        `yaml:"cacheKey"`
	FetchTimeout  time.Duration `yaml:"fetchTimeout"`
}

// DefaultConfig mirrors the three daily check-ins of the original dashboard.
func DefaultConfig() Config {
	return Config{
		KeyHours: []KeyHour{
			{Hour: 5, Label: "Morning Walk"},
			{Hour: 12, Label: "Lunch"},
			{Hour: 21, Label: "Night Time"},
		},
		LookaheadDays: 4,
		MaxUpcoming:   6,
		CacheTTL:      30 * time.Minute,
		CacheKey:      "forecast:current",
		FetchTimeout:  15 * time.Second,
	}
}

func (c Config) Validate() error {
	for _, kh := range c.KeyHours {
		if kh.Hour < 0 || kh.Hour > 23 {
			return fmt.Errorf("dashboard key hour %d out of range", kh.Hour)
		}
		if kh.Label == "" {
			return fmt.Errorf("dashboard key hour %d needs a label", kh.Hour)
		}
	}
	if c.LookaheadDays < 0 {
		return errors.New("dashboard.lookaheadDays cannot be negative")
	}
	if c.MaxUpcoming < 0 {
		return errors.New("dashboard.maxUpcoming cannot be negative")
	}
	if c.CacheTTL < 0 {
		return errors.New("dashboard.cacheTtl cannot be negative")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("dashboard.fetchTimeout must be positive")
	}
	if c.CacheKey == "" {
		return errors.New("dashboard.cacheKey cannot be empty")
	}
	return nil
}
