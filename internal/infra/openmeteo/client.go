package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/domain/weather"
)

const (
	defaultBaseURL = "https://api.open-meteo.com"
	localLayout    = "2006-01-02T15:04"
	dateLayout     = "2006-01-02"
)

var (
	hourlyFields = []string{
		"temperature_2m", "apparent_temperature", "relative_humidity_2m", "dew_point_2m",
		"precipitation", "rain", "showers", "cloud_cover", "wind_speed_10m", "is_day",
	}
	dailyFields = []string{
		"sunrise", "sunset", "temperature_2m_max", "temperature_2m_min",
		"apparent_temperature_max", "apparent_temperature_min", "precipitation_sum",
	}
)

// Config points the client at a location.
type Config struct {
	BaseURL      string
	Latitude     float64
	Longitude    float64
	ForecastDays int
	Timeout      time.Duration
}

// Client fetches hourly and daily forecasts from Open-Meteo.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(cfg Config) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = 8
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Fetch retrieves and normalizes the forecast for the configured location.
func (c *Client) Fetch(ctx context.Context) (weather.Forecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(c.cfg.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(c.cfg.Longitude, 'f', -1, 64))
	params.Set("timezone", "auto")
	params.Set("forecast_days", strconv.Itoa(c.cfg.ForecastDays))
	params.Set("hourly", strings.Join(hourlyFields, ","))
	params.Set("daily", strings.Join(dailyFields, ","))
	endpoint := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.Forecast{}, fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return weather.Forecast{}, fmt.Errorf("decode forecast response: %w", err)
	}
	if raw.Error {
		return weather.Forecast{}, fmt.Errorf("forecast api error: %s", raw.Reason)
	}

	f, err := normalize(raw)
	if err != nil {
		return weather.Forecast{}, err
	}
	f.Source = c.baseURL
	return f, nil
}

type apiResponse struct {
	Error            bool      `json:"error"`
	Reason           string    `json:"reason"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Timezone         string    `json:"timezone"`
	TimezoneAbbrev   string    `json:"timezone_abbreviation"`
	UTCOffsetSeconds int       `json:"utc_offset_seconds"`
	Hourly           apiHourly `json:"hourly"`
	Daily            apiDaily  `json:"daily"`
}

// Open-Meteo reports gaps as nulls inside otherwise aligned column arrays.
type apiHourly struct {
	Time                []string   `json:"time"`
	Temperature         []*float64 `json:"temperature_2m"`
	ApparentTemperature []*float64 `json:"apparent_temperature"`
	Humidity            []*float64 `json:"relative_humidity_2m"`
	DewPoint            []*float64 `json:"dew_point_2m"`
	Precipitation       []*float64 `json:"precipitation"`
	Rain                []*float64 `json:"rain"`
	Showers             []*float64 `json:"showers"`
	CloudCover          []*float64 `json:"cloud_cover"`
	WindSpeed           []*float64 `json:"wind_speed_10m"`
	IsDay               []*int     `json:"is_day"`
}

type apiDaily struct {
	Time                   []string   `json:"time"`
	Sunrise                []string   `json:"sunrise"`
	Sunset                 []string   `json:"sunset"`
	TemperatureMax         []*float64 `json:"temperature_2m_max"`
	TemperatureMin         []*float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax []*float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin []*float64 `json:"apparent_temperature_min"`
	PrecipitationSum       []*float64 `json:"precipitation_sum"`
}

func normalize(raw apiResponse) (weather.Forecast, error) {
	f := weather.Forecast{
		Latitude:         raw.Latitude,
		Longitude:        raw.Longitude,
		Timezone:         raw.Timezone,
		TimezoneAbbrev:   raw.TimezoneAbbrev,
		UTCOffsetSeconds: raw.UTCOffsetSeconds,
	}
	loc := f.Location()

	h := raw.Hourly
	n := len(h.Time)
	for name, l := range map[string]int{
		"temperature_2m":       len(h.Temperature),
		"apparent_temperature": len(h.ApparentTemperature),
		"relative_humidity_2m": len(h.Humidity),
		"dew_point_2m":         len(h.DewPoint),
		"precipitation":        len(h.Precipitation),
		"rain":                 len(h.Rain),
		"showers":              len(h.Showers),
		"cloud_cover":          len(h.CloudCover),
		"wind_speed_10m":       len(h.WindSpeed),
		"is_day":               len(h.IsDay),
	} {
		if l != n {
			return weather.Forecast{}, fmt.Errorf("hourly %s has %d entries, time has %d", name, l, n)
		}
	}

	f.Hourly = make([]weather.Snapshot, 0, n)
	var prev time.Time
	for i, stamp := range h.Time {
		ts, err := time.ParseInLocation(localLayout, stamp, loc)
		if err != nil {
			return weather.Forecast{}, fmt.Errorf("parse hourly time %q: %w", stamp, err)
		}
		// A local stamp repeated across a DST fall-back is the hour after the previous one.
		if !prev.IsZero() && !ts.After(prev) {
			if next := prev.Add(time.Hour); next.In(loc).Format(localLayout) == stamp {
				ts = next
			}
		}
		prev = ts
		// Without an apparent temperature nothing downstream can use the hour.
		if h.ApparentTemperature[i] == nil {
			continue
		}
		f.Hourly = append(f.Hourly, weather.Snapshot{
			Time:                ts,
			ApparentTemperature: *h.ApparentTemperature[i],
			Temperature:         h.Temperature[i],
			Humidity:            value(h.Humidity[i]),
			DewPoint:            h.DewPoint[i],
			Precipitation:       value(h.Precipitation[i]),
			Rain:                value(h.Rain[i]),
			Showers:             value(h.Showers[i]),
			WindSpeed:           value(h.WindSpeed[i]),
			CloudCover:          value(h.CloudCover[i]),
			IsDaylight:          h.IsDay[i] != nil && *h.IsDay[i] == 1,
		})
	}

	d := raw.Daily
	for name, l := range map[string]int{
		"sunrise":                  len(d.Sunrise),
		"sunset":                   len(d.Sunset),
		"temperature_2m_max":       len(d.TemperatureMax),
		"temperature_2m_min":       len(d.TemperatureMin),
		"apparent_temperature_max": len(d.ApparentTemperatureMax),
		"apparent_temperature_min": len(d.ApparentTemperatureMin),
		"precipitation_sum":        len(d.PrecipitationSum),
	} {
		if l != len(d.Time) {
			return weather.Forecast{}, fmt.Errorf("daily %s has %d entries, time has %d", name, l, len(d.Time))
		}
	}
	f.Daily = make([]weather.DailySummary, 0, len(d.Time))
	for i, stamp := range d.Time {
		date, err := time.ParseInLocation(dateLayout, stamp, loc)
		if err != nil {
			return weather.Forecast{}, fmt.Errorf("parse daily date %q: %w", stamp, err)
		}
		f.Daily = append(f.Daily, weather.DailySummary{
			Date:                   date,
			Sunrise:                parseLocal(d.Sunrise[i], loc),
			Sunset:                 parseLocal(d.Sunset[i], loc),
			TemperatureMax:         value(d.TemperatureMax[i]),
			TemperatureMin:         value(d.TemperatureMin[i]),
			ApparentTemperatureMax: value(d.ApparentTemperatureMax[i]),
			ApparentTemperatureMin: value(d.ApparentTemperatureMin[i]),
			PrecipitationSum:       d.PrecipitationSum[i],
		})
	}
	return f, nil
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func parseLocal(value string, loc *time.Location) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}
	ts, err := time.ParseInLocation(localLayout, value, loc)
	if err != nil {
		return time.Time{}
	}
	return ts
}

var _ dashboard.ForecastProvider = (*Client)(nil)
