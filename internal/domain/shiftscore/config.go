package shiftscore

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ShiftHour binds a shift to the hour of day it is scored at.
type ShiftHour struct {
	Shift Shift `yaml:"shift"`
	Hour  int   `yaml:"hour"`
}

// Tier is one step of a mutually exclusive tier set.
type Tier struct {
	Threshold float64 `yaml:"threshold"`
	Weight    float64 `yaml:"weight"`
	Reason    string  `yaml:"reason"`
}

// MuggyRule rewards sticky, uncomfortable air.
type MuggyRule struct {
	HumidityAbove float64 `yaml:"humidityAbove"`
	DewPointAbove float64 `yaml:"dewPointAbove"`
	Weight        float64 `yaml:"weight"`
	Reason        string  `yaml:"reason"`
}

// CalendarBonus applies to one shift on the listed weekdays.
type CalendarBonus struct {
	Shift    Shift    `yaml:"shift"`
	Weekdays []string `yaml:"weekdays"`
	Weight   float64  `yaml:"weight"`
	Reason   string   `yaml:"reason"`
}

// PleasantRule penalises weather nice enough to pull extra drivers onto the road.
type PleasantRule struct {
	TemperatureMin   float64 `yaml:"temperatureMin"`
	TemperatureMax   float64 `yaml:"temperatureMax"`
	CloudBelow       float64 `yaml:"cloudBelow"`
	WindBelow        float64 `yaml:"windBelow"`
	PrecipitationMax float64 `yaml:"precipitationMax"`
	Penalty          float64 `yaml:"penalty"`
	Reason           string  `yaml:"reason"`
}

// LabelBand maps scores at or above Min to Label.
type LabelBand struct {
	Min   float64 `yaml:"min"`
	Label string  `yaml:"label"`
}

// Config is the shift scoring rule table. "Above" tier sets are ordered by descending threshold,
// the cold set by ascending threshold, so the first match is always the most severe tier.
type Config struct {
	Days          int             `yaml:"days"`
	Shifts        []ShiftHour     `yaml:"shifts"`
	Precipitation []Tier          `yaml:"precipitation"`
	Wind          []Tier          `yaml:"wind"`
	Cold          []Tier          `yaml:"cold"`
	Heat          []Tier          `yaml:"heat"`
	Muggy         MuggyRule       `yaml:"muggy"`
	Cloud         []Tier          `yaml:"cloud"`
	Calendar      []CalendarBonus `yaml:"calendar"`
	Pleasant      PleasantRule    `yaml:"pleasant"`
	Labels        []LabelBand     `yaml:"labels"`
	FloorLabel    string          `yaml:"floorLabel"`
}

// DefaultConfig returns the current canonical thresholds.
func DefaultConfig() Config {
	return Config{
		Days: 7,
		Shifts: []ShiftHour{
			{Shift: Morning, Hour: 6},
			{Shift: Lunch, Hour: 12},
			{Shift: Dinner, Hour: 18},
			{Shift: Late, Hour: 22},
		},
		Precipitation: []Tier{
			{Threshold: 3, Weight: 3, Reason: "heavy rain"},
			{Threshold: 1, Weight: 2, Reason: "moderate rain"},
			{Threshold: 0.2, Weight: 1, Reason: "light rain"},
		},
		Wind: []Tier{
			{Threshold: 30, Weight: 1.5, Reason: "strong wind"},
			{Threshold: 20, Weight: 0.5, Reason: "breezy"},
		},
		Cold: []Tier{
			{Threshold: 10, Weight: 1.5, Reason: "very cold feels"},
			{Threshold: 15, Weight: 0.5, Reason: "chilly"},
		},
		Heat: []Tier{
			{Threshold: 40, Weight: 1.5, Reason: "extreme heat"},
			{Threshold: 34, Weight: 1, Reason: "very hot"},
		},
		Muggy: MuggyRule{HumidityAbove: 70, DewPointAbove: 18, Weight: 0.5, Reason: "muggy and sticky"},
		Cloud: []Tier{
			{Threshold: 90, Weight: 0.5, Reason: "overcast and gloomy"},
			{Threshold: 70, Weight: 0.25, Reason: "mostly cloudy"},
		},
		Calendar: []CalendarBonus{
			{Shift: Dinner, Weekdays: []string{"friday", "saturday"}, Weight: 1, Reason: "weekend dinner"},
			{Shift: Late, Weekdays: []string{"friday", "saturday"}, Weight: 1.5, Reason: "weekend late surge"},
			{Shift: Late, Weekdays: []string{"monday", "tuesday"}, Weight: 0.5, Reason: "early-week late cravings"},
		},
		Pleasant: PleasantRule{
			TemperatureMin:   18,
			TemperatureMax:   26,
			CloudBelow:       50,
			WindBelow:        15,
			PrecipitationMax: 0,
			Penalty:          1,
			Reason:           "pleasant weather, more drivers out",
		},
		Labels: []LabelBand{
			{Min: 4, Label: "very_high"},
			{Min: 2.5, Label: "high"},
			{Min: 1, Label: "moderate"},
		},
		FloorLabel: "low",
	}
}

// Validate rejects tables that would break tier exclusivity or label monotonicity.
func (c Config) Validate() error {
	if c.Days <= 0 {
		return errors.New("shifts.days must be positive")
	}
	if len(c.Shifts) == 0 {
		return errors.New("shifts.shifts cannot be empty")
	}
	seen := make(map[Shift]struct{}, len(c.Shifts))
	for _, sh := range c.Shifts {
		if strings.TrimSpace(string(sh.Shift)) == "" {
			return errors.New("shifts.shifts entries need a name")
		}
		if _, ok := seen[sh.Shift]; ok {
			return fmt.Errorf("shift %q listed twice", sh.Shift)
		}
		seen[sh.Shift] = struct{}{}
		if sh.Hour < 0 || sh.Hour > 23 {
			return fmt.Errorf("shift %q hour %d out of range", sh.Shift, sh.Hour)
		}
	}
	for name, tiers := range map[string][]Tier{"precipitation": c.Precipitation, "wind": c.Wind, "heat": c.Heat, "cloud": c.Cloud} {
		if err := validateTiers(name, tiers, true); err != nil {
			return err
		}
	}
	if err := validateTiers("cold", c.Cold, false); err != nil {
		return err
	}
	if c.Muggy.Weight < 0 {
		return errors.New("shifts.muggy.weight cannot be negative")
	}
	for _, bonus := range c.Calendar {
		if _, ok := seen[bonus.Shift]; !ok {
			return fmt.Errorf("calendar bonus references unknown shift %q", bonus.Shift)
		}
		if bonus.Weight < 0 {
			return fmt.Errorf("calendar bonus %q weight cannot be negative", bonus.Reason)
		}
		if _, err := parseWeekdays(bonus.Weekdays); err != nil {
			return err
		}
	}
	if c.Pleasant.Penalty < 0 {
		return errors.New("shifts.pleasant.penalty is subtracted and must not be negative")
	}
	for i, band := range c.Labels {
		if strings.TrimSpace(band.Label) == "" {
			return errors.New("shifts.labels entries need a label")
		}
		if i > 0 && band.Min >= c.Labels[i-1].Min {
			return errors.New("shifts.labels must be ordered by strictly descending min")
		}
	}
	if strings.TrimSpace(c.FloorLabel) == "" {
		return errors.New("shifts.floorLabel cannot be empty")
	}
	return nil
}

func validateTiers(name string, tiers []Tier, descending bool) error {
	for i, tier := range tiers {
		if tier.Weight < 0 {
			return fmt.Errorf("shifts.%s[%d] weight cannot be negative", name, i)
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1].Threshold
		if descending && tier.Threshold >= prev {
			return fmt.Errorf("shifts.%s thresholds must be strictly descending", name)
		}
		if !descending && tier.Threshold <= prev {
			return fmt.Errorf("shifts.%s thresholds must be strictly ascending", name)
		}
	}
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

func parseWeekdays(names []string) (map[time.Weekday]struct{}, error) {
	out := make(map[time.Weekday]struct{}, len(names))
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		out[day] = struct{}{}
	}
	return out, nil
}
