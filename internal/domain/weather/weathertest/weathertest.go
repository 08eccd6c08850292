// Package weathertest builds synthetic forecasts for tests.
package weathertest

import (
	"time"

	"github.com/yanqian/forecast-advisor/internal/domain/weather"
)

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Calm is a snapshot that fires no outfit accessory or shift weather rule on its own.
func Calm(t time.Time) weather.Snapshot {
	return weather.Snapshot{
		Time:                t,
		ApparentTemperature: 16,
		Temperature:         Float(14),
		Humidity:            50,
		DewPoint:            Float(5),
		WindSpeed:           5,
		CloudCover:          20,
		IsDaylight:          t.Hour() >= 6 && t.Hour() < 19,
	}
}

// Forecast builds days*24 hourly entries from local midnight of base plus one daily entry per day.
// fn may be nil, in which case Calm is used.
func Forecast(base time.Time, days int, fn func(t time.Time) weather.Snapshot) weather.Forecast {
	if fn == nil {
		fn = Calm
	}
	loc := base.Location()
	start := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, loc)
	abbrev, offset := start.Zone()
	f := weather.Forecast{
		TimezoneAbbrev:   abbrev,
		UTCOffsetSeconds: offset,
		Source:           "weathertest",
	}
	if name := loc.String(); name != "Local" {
		f.Timezone = name
	}
	for d := 0; d < days; d++ {
		day := time.Date(start.Year(), start.Month(), start.Day()+d, 0, 0, 0, 0, loc)
		for h := 0; h < 24; h++ {
			ts := day.Add(time.Duration(h) * time.Hour)
			snap := fn(ts)
			snap.Time = ts
			f.Hourly = append(f.Hourly, snap)
		}
		f.Daily = append(f.Daily, weather.DailySummary{
			Date:                   day,
			Sunrise:                day.Add(6 * time.Hour),
			Sunset:                 day.Add(19 * time.Hour),
			TemperatureMax:         20,
			TemperatureMin:         10,
			ApparentTemperatureMax: 19,
			ApparentTemperatureMin: 8,
			PrecipitationSum:       Float(0),
		})
	}
	return f
}
