package clothesline

import (
	"errors"

	"github.com/yanqian/forecast-advisor/internal/domain/weather"
)

// Planner flags good days to hang washing outside.
type Planner interface {
	Plan(series *weather.Series) []Day
}

type planner struct {
	cfg Config
}

// NewPlanner builds a planner with the given thresholds.
func NewPlanner(cfg Config) Planner {
	return &planner{cfg: cfg}
}

// Plan walks the daily entries that are present, up to the configured number of days.
func (p *planner) Plan(series *weather.Series) []Day {
	days := series.Days(p.cfg.Days)
	loc := series.Location()
	out := make([]Day, 0, len(days))
	for _, d := range days {
		date := d.Date.In(loc)
		out = append(out, Day{
			Date:             date,
			Weekday:          date.Weekday().String(),
			PrecipitationSum: d.PrecipitationSum,
			Dry:              d.PrecipitationSum != nil && *d.PrecipitationSum <= p.cfg.MaxPrecipitation,
		})
	}
	return out
}

// Validate checks the planner settings.
func (c Config) Validate() error {
	if c.Days <= 0 {
		return errors.New("clothesline.days must be positive")
	}
	if c.MaxPrecipitation < 0 {
		return errors.New("clothesline.maxPrecipitation cannot be negative")
	}
	return nil
}
