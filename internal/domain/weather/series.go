package weather

import (
	"fmt"
	"sort"
	"time"

	apperrors "github.com/yanqian/forecast-advisor/pkg/errors"
	"github.com/yanqian/forecast-advisor/pkg/util"
)

const dateKeyLayout = "2006-01-02"

// Series is a read-only, time-keyed view over a Forecast. Lookups go through the wall clock hour in
// the forecast's location, so the hourly slice may have gaps or arrive unsorted.
type Series struct {
	forecast Forecast
	loc      *time.Location
	hours    []Snapshot
	byHour   map[int64]int
	byDay    map[string]int
}

// NewSeries indexes a forecast. Later duplicates of an hour or a date are ignored.
func NewSeries(f Forecast) *Series {
	loc := f.Location()
	hours := make([]Snapshot, 0, len(f.Hourly))
	seen := make(map[int64]struct{}, len(f.Hourly))
	for _, snap := range f.Hourly {
		snap.Time = util.TruncateHour(snap.Time.In(loc))
		key := hourKey(snap.Time)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		hours = append(hours, snap)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Time.Before(hours[j].Time) })

	s := &Series{
		forecast: f,
		loc:      loc,
		hours:    hours,
		byHour:   make(map[int64]int, len(hours)),
		byDay:    make(map[string]int, len(f.Daily)),
	}
	for i, snap := range hours {
		s.byHour[hourKey(snap.Time)] = i
	}
	for i, day := range f.Daily {
		key := day.Date.In(loc).Format(dateKeyLayout)
		if _, ok := s.byDay[key]; !ok {
			s.byDay[key] = i
		}
	}
	return s
}

func hourKey(t time.Time) int64 {
	return util.TruncateHour(t).Unix()
}

// Location is the timezone every lookup is evaluated in.
func (s *Series) Location() *time.Location {
	return s.loc
}

// Forecast returns the underlying provider data.
func (s *Series) Forecast() Forecast {
	return s.forecast
}

// Len is the number of distinct hourly entries.
func (s *Series) Len() int {
	return len(s.hours)
}

// Start is the first hourly instant, zero when the series is empty.
func (s *Series) Start() time.Time {
	if len(s.hours) == 0 {
		return time.Time{}
	}
	return s.hours[0].Time
}

// End is the last hourly instant, zero when the series is empty.
func (s *Series) End() time.Time {
	if len(s.hours) == 0 {
		return time.Time{}
	}
	return s.hours[len(s.hours)-1].Time
}

// BaseDate is local midnight of the first hourly entry; day offsets count from it.
func (s *Series) BaseDate() time.Time {
	if len(s.hours) == 0 {
		return time.Time{}
	}
	return util.StartOfDay(s.hours[0].Time)
}

// DayStart returns local midnight dayOffset days after the base date.
func (s *Series) DayStart(dayOffset int) time.Time {
	base := s.BaseDate()
	return time.Date(base.Year(), base.Month(), base.Day()+dayOffset, 0, 0, 0, 0, s.loc)
}

// At returns the snapshot for the hour containing t.
func (s *Series) At(t time.Time) (Snapshot, error) {
	local := util.TruncateHour(t.In(s.loc))
	idx, ok := s.byHour[hourKey(local)]
	if !ok {
		return Snapshot{}, missingHour(local)
	}
	return s.hours[idx], nil
}

// Slot returns the snapshot at hour-of-day on the given day offset.
func (s *Series) Slot(dayOffset, hour int) (Snapshot, error) {
	day := s.DayStart(dayOffset)
	return s.At(time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, s.loc))
}

// Day returns the daily summary for the local date of t.
func (s *Series) Day(t time.Time) (DailySummary, error) {
	local := t.In(s.loc)
	idx, ok := s.byDay[local.Format(dateKeyLayout)]
	if !ok {
		return DailySummary{}, missingDay(local)
	}
	return s.forecast.Daily[idx], nil
}

// Days returns up to limit daily summaries in provider order; limit <= 0 returns all.
func (s *Series) Days(limit int) []DailySummary {
	days := s.forecast.Daily
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}
	out := make([]DailySummary, len(days))
	copy(out, days)
	return out
}

// RequireDays checks that the hourly series reaches the last hour of day `days` counted from the
// base date. Callers run it before iterating day offsets.
func (s *Series) RequireDays(days int) error {
	if days <= 0 {
		return nil
	}
	if len(s.hours) == 0 {
		return apperrors.Wrap(apperrors.CodePreconditionFailed, "forecast series is empty", nil)
	}
	last := s.DayStart(days).Add(-time.Hour)
	if s.End().Before(last) {
		return apperrors.Wrap(apperrors.CodePreconditionFailed,
			fmt.Sprintf("forecast series ends at %s, need hourly data through %s (%d days)",
				s.End().Format("2006-01-02T15:04"), last.Format("2006-01-02T15:04"), days), nil)
	}
	return nil
}
