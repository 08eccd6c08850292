package weather

import "time"

// Snapshot is the weather at one forecast hour.
type Snapshot struct {
	Time                time.Time `json:"time"`
	ApparentTemperature float64   `json:"apparentTemperature"`
	Temperature         *float64  `json:"temperature,omitempty"`
	Humidity            float64   `json:"humidity"`
	DewPoint            *float64  `json:"dewPoint,omitempty"`
	Precipitation       float64   `json:"precipitation"`
	Rain                float64   `json:"rain"`
	Showers             float64   `json:"showers"`
	WindSpeed           float64   `json:"windSpeed"`
	CloudCover          float64   `json:"cloudCover"`
	IsDaylight          bool      `json:"isDaylight"`
}

// AirTemperature returns the measured temperature, or the apparent one when the provider omitted it.
func (s Snapshot) AirTemperature() float64 {
	if s.Temperature != nil {
		return *s.Temperature
	}
	return s.ApparentTemperature
}

// DailySummary is one entry of the provider's daily series.
type DailySummary struct {
	Date                   time.Time `json:"date"`
	Sunrise                time.Time `json:"sunrise"`
	Sunset                 time.Time `json:"sunset"`
	TemperatureMax         float64   `json:"temperatureMax"`
	TemperatureMin         float64   `json:"temperatureMin"`
	ApparentTemperatureMax float64   `json:"apparentTemperatureMax"`
	ApparentTemperatureMin float64   `json:"apparentTemperatureMin"`
	PrecipitationSum       *float64  `json:"precipitationSum"`
}

// Forecast is the normalized provider payload. It is what gets cached; Series indexes it.
type Forecast struct {
	Latitude         float64        `json:"latitude"`
	Longitude        float64        `json:"longitude"`
	Timezone         string         `json:"timezone"`
	TimezoneAbbrev   string         `json:"timezoneAbbreviation"`
	UTCOffsetSeconds int            `json:"utcOffsetSeconds"`
	Hourly           []Snapshot     `json:"hourly"`
	Daily            []DailySummary `json:"daily"`
	FetchedAt        time.Time      `json:"fetchedAt"`
	Source           string         `json:"source"`
}

// Location resolves the forecast timezone, preferring the IANA name and falling back to the fixed offset.
func (f Forecast) Location() *time.Location {
	if f.Timezone != "" {
		if loc, err := time.LoadLocation(f.Timezone); err == nil {
			return loc
		}
	}
	name := f.TimezoneAbbrev
	if name == "" {
		name = f.Timezone
	}
	if name == "" && f.UTCOffsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone(name, f.UTCOffsetSeconds)
}
