package shiftscore

import (
	"fmt"

	"github.com/yanqian/forecast-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/forecast-advisor/pkg/errors"
)

// Scorer rates ride-hailing shifts from forecast weather and the calendar.
type Scorer interface {
	Score(series *weather.Series, dayOffset int, shift Shift) (ShiftScore, error)
	Report(series *weather.Series) ([]ShiftScore, error)
	Label(score float64) string
	Shifts() []ShiftHour
}

type scorer struct {
	cfg   Config
	rules []rule
	hours map[Shift]int
}

// NewScorer compiles the rule table.
func NewScorer(cfg Config) Scorer {
	hours := make(map[Shift]int, len(cfg.Shifts))
	for _, sh := range cfg.Shifts {
		hours[sh.Shift] = sh.Hour
	}
	return &scorer{cfg: cfg, rules: ruleTable(cfg), hours: hours}
}

func (s *scorer) Shifts() []ShiftHour {
	out := make([]ShiftHour, len(s.cfg.Shifts))
	copy(out, s.cfg.Shifts)
	return out
}

// Score evaluates one (day, shift). A missing hour surfaces as a missing_data error.
func (s *scorer) Score(series *weather.Series, dayOffset int, shift Shift) (ShiftScore, error) {
	hour, ok := s.hours[shift]
	if !ok {
		return ShiftScore{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown shift %q", shift), nil)
	}
	if dayOffset < 0 {
		return ShiftScore{}, apperrors.Wrap(apperrors.CodeInvalidInput, "day offset cannot be negative", nil)
	}
	snap, err := series.Slot(dayOffset, hour)
	if err != nil {
		return ShiftScore{}, err
	}
	day := series.DayStart(dayOffset)
	in := slot{snap: snap, shift: shift, weekday: day.Weekday()}

	result := ShiftScore{
		DayOffset:     dayOffset,
		Date:          day.Format("2006-01-02"),
		Weekday:       day.Weekday().String(),
		Shift:         shift,
		Hour:          hour,
		Time:          snap.Time,
		Contributions: []Contribution{},
	}
	for _, r := range s.rules {
		if c, fired := r.eval(in); fired {
			result.Contributions = append(result.Contributions, c)
			result.Score += c.Weight
		}
	}
	result.Label = s.Label(result.Score)
	return result, nil
}

// Report scores every configured shift on each of the first cfg.Days days, day ascending then shift
// in configured order. A series that does not reach the end of the horizon is rejected before any
// lookup.
func (s *scorer) Report(series *weather.Series) ([]ShiftScore, error) {
	if err := series.RequireDays(s.cfg.Days); err != nil {
		return nil, err
	}
	out := make([]ShiftScore, 0, s.cfg.Days*len(s.cfg.Shifts))
	for day := 0; day < s.cfg.Days; day++ {
		for _, sh := range s.cfg.Shifts {
			score, err := s.Score(series, day, sh.Shift)
			if err != nil {
				return nil, err
			}
			out = append(out, score)
		}
	}
	return out, nil
}

// Label maps a score onto the configured bands, highest first.
func (s *scorer) Label(score float64) string {
	for _, band := range s.cfg.Labels {
		if score >= band.Min {
			return band.Label
		}
	}
	return s.cfg.FloorLabel
}
