package clothesline

import "time"

// Config controls how many days are planned and what counts as a drying day.
type Config struct {
	Days             int     `yaml:"days"`
	MaxPrecipitation float64 `yaml:"maxPrecipitation"`
}

// DefaultConfig plans a week ahead and only accepts fully dry days.
func DefaultConfig() Config {
	return Config{Days: 7, MaxPrecipitation: 0}
}

// Day is the washing outlook for one local date. PrecipitationSum is nil when
// the provider had no total for the day; such a day is never Dry.
type Day struct {
	Date             time.Time `json:"date"`
	Weekday          string    `json:"weekday"`
	PrecipitationSum *float64  `json:"precipitationSum"`
	Dry              bool      `json:"dry"`
}
