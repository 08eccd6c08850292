package shiftscore

import (
	"fmt"
	"time"

	"github.com/yanqian/forecast-advisor/internal/domain/weather"
)

// slot is everything a rule may look at.
type slot struct {
	snap    weather.Snapshot
	shift   Shift
	weekday time.Weekday
}

type rule struct {
	name string
	eval func(slot) (Contribution, bool)
}

func contribution(reason string, weight float64) Contribution {
	return Contribution{Reason: fmt.Sprintf("%s (%+g)", reason, weight), Weight: weight}
}

func aboveTiers(name string, tiers []Tier, metric func(weather.Snapshot) float64) rule {
	return rule{name: name, eval: func(s slot) (Contribution, bool) {
		v := metric(s.snap)
		for _, tier := range tiers {
			if v > tier.Threshold {
				return contribution(tier.Reason, tier.Weight), true
			}
		}
		return Contribution{}, false
	}}
}

func belowTiers(name string, tiers []Tier, metric func(weather.Snapshot) float64) rule {
	return rule{name: name, eval: func(s slot) (Contribution, bool) {
		v := metric(s.snap)
		for _, tier := range tiers {
			if v < tier.Threshold {
				return contribution(tier.Reason, tier.Weight), true
			}
		}
		return Contribution{}, false
	}}
}

func ruleTable(cfg Config) []rule {
	rules := []rule{
		aboveTiers("precipitation", cfg.Precipitation, func(s weather.Snapshot) float64 { return s.Precipitation }),
		aboveTiers("wind", cfg.Wind, func(s weather.Snapshot) float64 { return s.WindSpeed }),
		belowTiers("cold", cfg.Cold, func(s weather.Snapshot) float64 { return s.ApparentTemperature }),
		aboveTiers("heat", cfg.Heat, func(s weather.Snapshot) float64 { return s.ApparentTemperature }),
		{name: "muggy", eval: func(s slot) (Contribution, bool) {
			m := cfg.Muggy
			if s.snap.DewPoint == nil || m.Weight == 0 {
				return Contribution{}, false
			}
			if s.snap.Humidity > m.HumidityAbove && *s.snap.DewPoint > m.DewPointAbove {
				return contribution(m.Reason, m.Weight), true
			}
			return Contribution{}, false
		}},
		aboveTiers("cloud", cfg.Cloud, func(s weather.Snapshot) float64 { return s.CloudCover }),
	}

	for _, bonus := range cfg.Calendar {
		bonus := bonus // per-iteration copy; go directive is 1.21 (pre-1.22 loopvar semantics)
		days, err := parseWeekdays(bonus.Weekdays)
		if err != nil {
			continue
		}
		rules = append(rules, rule{name: "calendar", eval: func(s slot) (Contribution, bool) {
			if s.shift != bonus.Shift {
				return Contribution{}, false
			}
			if _, ok := days[s.weekday]; !ok {
				return Contribution{}, false
			}
			return contribution(bonus.Reason, bonus.Weight), true
		}})
	}

	p := cfg.Pleasant
	rules = append(rules, rule{name: "pleasant", eval: func(s slot) (Contribution, bool) {
		if p.Penalty == 0 {
			return Contribution{}, false
		}
		temp := s.snap.AirTemperature()
		if temp >= p.TemperatureMin && temp <= p.TemperatureMax &&
			s.snap.CloudCover < p.CloudBelow &&
			s.snap.WindSpeed < p.WindBelow &&
			s.snap.Precipitation <= p.PrecipitationMax {
			return contribution(p.Reason, -p.Penalty), true
		}
		return Contribution{}, false
	}})
	return rules
}
