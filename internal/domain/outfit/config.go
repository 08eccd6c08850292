package outfit

import (
	"errors"
	"fmt"
	"strings"
)

// Garments is a complete outfit, used by overrides.
type Garments struct {
	Top         []string `yaml:"top"`
	Bottom      []string `yaml:"bottom"`
	Accessories []string `yaml:"accessories"`
}

// Override is a short-circuiting outfit.
type Override struct {
	Name   string   `yaml:"name"`
	Reason string   `yaml:"reason"`
	Outfit Garments `yaml:"outfit"`
}

// MiserableOverride fires at night in cold, windy rain.
type MiserableOverride struct {
	Override      `yaml:",inline"`
	WindAbove     float64 `yaml:"windAbove"`
	PrecipAbove   float64 `yaml:"precipAbove"`
	ApparentBelow float64 `yaml:"apparentBelow"`
}

// HeatOverride fires when it is hot and humid.
type HeatOverride struct {
	Override      `yaml:",inline"`
	ApparentAbove float64 `yaml:"apparentAbove"`
	HumidityAbove float64 `yaml:"humidityAbove"`
}

// ColdTrapOverride fires on windy, overcast days that look mild on paper.
type ColdTrapOverride struct {
	Override    `yaml:",inline"`
	ApparentMin float64 `yaml:"apparentMin"`
	ApparentMax float64 `yaml:"apparentMax"`
	WindAbove   float64 `yaml:"windAbove"`
	CloudAbove  float64 `yaml:"cloudAbove"`
}

// Layer adds garments whenever the working temperature is below the cut point. Layers accumulate.
type Layer struct {
	Below  float64  `yaml:"below"`
	Top    []string `yaml:"top"`
	Bottom []string `yaml:"bottom"`
	Reason string   `yaml:"reason"`
}

// Band is one exclusive temperature band.
type Band struct {
	Below  float64  `yaml:"below"`
	Items  []string `yaml:"items"`
	Reason string   `yaml:"reason"`
}

// BandSet picks the first band whose cut point is above the temperature, else the fallback.
type BandSet struct {
	Bands    []Band `yaml:"bands"`
	Fallback Band   `yaml:"fallback"`
}

func (b BandSet) pick(temp float64) Band {
	for _, band := range b.Bands {
		if temp < band.Below {
			return band
		}
	}
	return b.Fallback
}

// Accessory is the payload of one accessory rule.
type Accessory struct {
	Items  []string `yaml:"items"`
	Reason string   `yaml:"reason"`
}

// AccessoryConfig holds the thresholds of the independent accessory rules.
type AccessoryConfig struct {
	PrecipAbove        float64   `yaml:"precipAbove"`
	RainGear           Accessory `yaml:"rainGear"`
	WindAbove          float64   `yaml:"windAbove"`
	WindGear           Accessory `yaml:"windGear"`
	BitterColdBelow    float64   `yaml:"bitterColdBelow"`
	WindChillBelow     float64   `yaml:"windChillBelow"`
	WindChillWindAbove float64   `yaml:"windChillWindAbove"`
	ColdGear           Accessory `yaml:"coldGear"`
	HumidityAbove      float64   `yaml:"humidityAbove"`
	HumidWarmFrom      float64   `yaml:"humidWarmFrom"`
	Breathable         Accessory `yaml:"breathable"`
	OvercastAbove      float64   `yaml:"overcastAbove"`
	CloudChillMin      float64   `yaml:"cloudChillMin"`
	CloudChillMax      float64   `yaml:"cloudChillMax"`
	CloudChill         Accessory `yaml:"cloudChill"`
}

// NormalizeConfig drives the post-processing of a finished outfit.
type NormalizeConfig struct {
	ThermalKeyword    string   `yaml:"thermalKeyword"`
	ThermalLabel      string   `yaml:"thermalLabel"`
	BaseLayer         string   `yaml:"baseLayer"`
	OuterwearKeywords []string `yaml:"outerwearKeywords"`
}

// Config is the outfit rule table.
type Config struct {
	Miserable       MiserableOverride `yaml:"miserable"`
	Heat            HeatOverride      `yaml:"heat"`
	ColdTrap        ColdTrapOverride  `yaml:"coldTrap"`
	NightAdjustment float64           `yaml:"nightAdjustment"`
	Layers          []Layer           `yaml:"layers"`
	Top             BandSet           `yaml:"top"`
	Bottom          BandSet           `yaml:"bottom"`
	Accessories     AccessoryConfig   `yaml:"accessories"`
	Normalize       NormalizeConfig   `yaml:"normalize"`
}

// DefaultConfig returns the tuned rule set.
func DefaultConfig() Config {
	return Config{
		Miserable: MiserableOverride{
			Override: Override{
				Name:   "miserable",
				Reason: "Nighttime + cold + windy + rain → Miserable override",
				Outfit: Garments{
					Top:         []string{"Thermal", "Jumper", "Waterproof jacket"},
					Bottom:      []string{"Track pants"},
					Accessories: []string{"Beanie", "Gloves", "Windbreaker", "Rain jacket"},
				},
			},
			WindAbove:     25,
			PrecipAbove:   0.3,
			ApparentBelow: 20,
		},
		Heat: HeatOverride{
			Override: Override{
				Name:   "heat",
				Reason: "Oppressively hot and humid → Heat override",
				Outfit: Garments{
					Top:         []string{"Light singlet"},
					Bottom:      []string{"Shorts"},
					Accessories: []string{"Sunglasses", "Cold water bottle", "Apply sunscreen"},
				},
			},
			ApparentAbove: 35,
			HumidityAbove: 40,
		},
		ColdTrap: ColdTrapOverride{
			Override: Override{
				Name:   "cold_trap",
				Reason: "Chilly daylight trap: overcast, windy → Needs coverage",
				Outfit: Garments{
					Top:         []string{"Long-sleeve or Hoodie"},
					Bottom:      []string{"Jeans or Track pants"},
					Accessories: []string{"Optional windbreaker"},
				},
			},
			ApparentMin: 18,
			ApparentMax: 23,
			WindAbove:   15,
			CloudAbove:  60,
		},
		NightAdjustment: 2,
		Layers: []Layer{
			{Below: 13, Top: []string{"Thermal"}, Bottom: []string{"Thermal"}, Reason: "Very cold (<13°C) → Thermals"},
			{Below: 17, Top: []string{"Jumper"}, Reason: "Cool (<17°C) → Jumper"},
		},
		Top: BandSet{
			Bands: []Band{
				{Below: 20, Items: []string{"Long-sleeve shirt"}, Reason: "Cool (<20°C) → Long-sleeve"},
				{Below: 30, Items: []string{"T-shirt"}, Reason: "Mild (20–29°C) → T-shirt"},
			},
			Fallback: Band{Items: []string{"T-shirt or Singlet"}, Reason: "Hot (≥30°C) → T-shirt or Singlet"},
		},
		Bottom: BandSet{
			Bands: []Band{
				{Below: 17, Items: []string{"Track pants"}, Reason: "Cool (<17°C) → Track pants"},
				{Below: 25, Items: []string{"Jeans"}, Reason: "Mild (17–24°C) → Jeans"},
			},
			Fallback: Band{Items: []string{"Shorts"}, Reason: "Warm (≥25°C) → Shorts"},
		},
		Accessories: AccessoryConfig{
			PrecipAbove:        0.3,
			RainGear:           Accessory{Items: []string{"Rain jacket"}, Reason: "Rain detected → Rain jacket"},
			WindAbove:          25,
			WindGear:           Accessory{Items: []string{"Windbreaker"}, Reason: "Strong wind (>25 km/h) → Windbreaker"},
			BitterColdBelow:    10,
			WindChillBelow:     13,
			WindChillWindAbove: 30,
			ColdGear:           Accessory{Items: []string{"Beanie", "Gloves"}, Reason: "Bitter cold or wind chill → Beanie & Gloves"},
			HumidityAbove:      70,
			HumidWarmFrom:      24,
			Breathable:         Accessory{Items: []string{"Breathable fabrics"}, Reason: "High humidity + warmth → Breathable needed"},
			OvercastAbove:      80,
			CloudChillMin:      16,
			CloudChillMax:      20,
			CloudChill:         Accessory{Items: []string{"Extra layer (cloud chill)"}, Reason: "Overcast and cool → Feels colder"},
		},
		Normalize: NormalizeConfig{
			ThermalKeyword:    "thermal",
			ThermalLabel:      "Thermals",
			BaseLayer:         "T-shirt",
			OuterwearKeywords: []string{"jacket", "hoodie", "jumper"},
		},
	}
}

// Validate rejects rule tables whose bands overlap or are empty.
func (c Config) Validate() error {
	for _, o := range []Override{c.Miserable.Override, c.Heat.Override, c.ColdTrap.Override} {
		if strings.TrimSpace(o.Name) == "" {
			return errors.New("outfit override name cannot be empty")
		}
	}
	if c.NightAdjustment < 0 {
		return errors.New("outfit.nightAdjustment cannot be negative")
	}
	if c.ColdTrap.ApparentMin > c.ColdTrap.ApparentMax {
		return errors.New("outfit.coldTrap.apparentMin must not exceed apparentMax")
	}
	if err := validateBands("top", c.Top); err != nil {
		return err
	}
	if err := validateBands("bottom", c.Bottom); err != nil {
		return err
	}
	if c.Accessories.CloudChillMin > c.Accessories.CloudChillMax {
		return errors.New("outfit.accessories.cloudChillMin must not exceed cloudChillMax")
	}
	if strings.TrimSpace(c.Normalize.ThermalKeyword) == "" || strings.TrimSpace(c.Normalize.ThermalLabel) == "" {
		return errors.New("outfit.normalize thermal keyword and label are required")
	}
	return nil
}

func validateBands(name string, set BandSet) error {
	for i, band := range set.Bands {
		if len(band.Items) == 0 {
			return fmt.Errorf("outfit.%s.bands[%d] has no items", name, i)
		}
		if i > 0 && band.Below <= set.Bands[i-1].Below {
			return fmt.Errorf("outfit.%s.bands must have strictly increasing cut points", name)
		}
	}
	if len(set.Fallback.Items) == 0 {
		return fmt.Errorf("outfit.%s.fallback has no items", name)
	}
	return nil
}
