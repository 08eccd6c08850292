package outfit

import "github.com/yanqian/forecast-advisor/internal/domain/weather"

type override struct {
	Override
	matches func(weather.Snapshot) bool
}

// conditions is what accessory rules see: the snapshot plus the night-adjusted temperature.
type conditions struct {
	snap weather.Snapshot
	temp float64
}

type accessoryRule struct {
	name string
	when func(conditions) bool
	gear Accessory
}

// overrideTable is evaluated in order; the order is part of the contract.
func overrideTable(cfg Config) []override {
	m, h, c := cfg.Miserable, cfg.Heat, cfg.ColdTrap
	return []override{
		{
			Override: m.Override,
			matches: func(s weather.Snapshot) bool {
				return !s.IsDaylight && s.WindSpeed > m.WindAbove &&
					(s.Rain > m.PrecipAbove || s.Showers > m.PrecipAbove) &&
					s.ApparentTemperature < m.ApparentBelow
			},
		},
		{
			Override: h.Override,
			matches: func(s weather.Snapshot) bool {
				return s.ApparentTemperature > h.ApparentAbove && s.Humidity > h.HumidityAbove
			},
		},
		{
			Override: c.Override,
			matches: func(s weather.Snapshot) bool {
				return s.IsDaylight &&
					s.ApparentTemperature >= c.ApparentMin && s.ApparentTemperature <= c.ApparentMax &&
					s.WindSpeed > c.WindAbove && s.CloudCover > c.CloudAbove
			},
		},
	}
}

func accessoryTable(cfg AccessoryConfig) []accessoryRule {
	return []accessoryRule{
		{
			name: "rain",
			when: func(c conditions) bool {
				return c.snap.Rain > cfg.PrecipAbove || c.snap.Showers > cfg.PrecipAbove
			},
			gear: cfg.RainGear,
		},
		{
			name: "wind",
			when: func(c conditions) bool { return c.snap.WindSpeed > cfg.WindAbove },
			gear: cfg.WindGear,
		},
		{
			name: "cold",
			when: func(c conditions) bool {
				return c.temp < cfg.BitterColdBelow || (c.temp < cfg.WindChillBelow && c.snap.WindSpeed > cfg.WindChillWindAbove)
			},
			gear: cfg.ColdGear,
		},
		{
			name: "humid",
			when: func(c conditions) bool { return c.snap.Humidity > cfg.HumidityAbove && c.temp >= cfg.HumidWarmFrom },
			gear: cfg.Breathable,
		},
		{
			name: "cloud_chill",
			when: func(c conditions) bool {
				return c.snap.CloudCover > cfg.OvercastAbove && c.temp >= cfg.CloudChillMin && c.temp <= cfg.CloudChillMax
			},
			gear: cfg.CloudChill,
		},
	}
}
