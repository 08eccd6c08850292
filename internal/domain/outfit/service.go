package outfit

import (
	"fmt"

	"github.com/yanqian/forecast-advisor/internal/domain/weather"
)

// Advisor turns a single hour of weather into clothing advice.
type Advisor interface {
	Recommend(snap weather.Snapshot) Recommendation
}

type advisor struct {
	cfg         Config
	overrides   []override
	accessories []accessoryRule
	normalizer  normalizer
}

// NewAdvisor builds the rule tables once; Recommend is pure afterwards.
func NewAdvisor(cfg Config) Advisor {
	return &advisor{
		cfg:         cfg,
		overrides:   overrideTable(cfg),
		accessories: accessoryTable(cfg.Accessories),
		normalizer:  normalizer{cfg: cfg.Normalize},
	}
}

func (a *advisor) Recommend(snap weather.Snapshot) Recommendation {
	for _, o := range a.overrides {
		if !o.matches(snap) {
			continue
		}
		return a.normalizer.apply(Recommendation{
			Top:         clone(o.Outfit.Top),
			Bottom:      clone(o.Outfit.Bottom),
			Accessories: clone(o.Outfit.Accessories),
			Reasons:     []string{o.Reason},
			Override:    o.Name,
		})
	}

	rec := Recommendation{
		Top:         []string{},
		Bottom:      []string{},
		Accessories: []string{},
		Reasons:     []string{},
	}
	temp := snap.ApparentTemperature
	if !snap.IsDaylight && a.cfg.NightAdjustment != 0 {
		temp -= a.cfg.NightAdjustment
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Night-time temp adjustment (−%g°C)", a.cfg.NightAdjustment))
	}

	for _, layer := range a.cfg.Layers {
		if temp < layer.Below {
			rec.Top = append(rec.Top, layer.Top...)
			rec.Bottom = append(rec.Bottom, layer.Bottom...)
			rec.Reasons = append(rec.Reasons, layer.Reason)
		}
	}

	top := a.cfg.Top.pick(temp)
	rec.Top = append(rec.Top, top.Items...)
	rec.Reasons = append(rec.Reasons, top.Reason)

	bottom := a.cfg.Bottom.pick(temp)
	rec.Bottom = append(rec.Bottom, bottom.Items...)
	rec.Reasons = append(rec.Reasons, bottom.Reason)

	c := conditions{snap: snap, temp: temp}
	for _, rule := range a.accessories {
		if rule.when(c) {
			rec.Accessories = append(rec.Accessories, rule.gear.Items...)
			rec.Reasons = append(rec.Reasons, rule.gear.Reason)
		}
	}

	return a.normalizer.apply(rec)
}

func clone(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
