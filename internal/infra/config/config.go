package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/forecast-advisor/internal/domain/clothesline"
	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/domain/outfit"
	"github.com/yanqian/forecast-advisor/internal/domain/shiftscore"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig         `yaml:"http"`
	Forecast    ForecastConfig     `yaml:"forecast"`
	Dashboard   DashboardConfig    `yaml:"dashboard"`
	Outfit      outfit.Config      `yaml:"outfit"`
	Shifts      shiftscore.Config  `yaml:"shifts"`
	Clothesline clothesline.Config `yaml:"clothesline"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// ForecastConfig points the provider at a location and controls caching.
type ForecastConfig struct {
	APIBaseURL      string        `yaml:"apiBaseUrl"`
	Latitude        float64       `yaml:"latitude"`
	Longitude       float64       `yaml:"longitude"`
	Days            int           `yaml:"days"`
	Timeout         time.Duration `yaml:"timeout"`
	CacheTTL        time.Duration `yaml:"cacheTtl"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
	Valkey          ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared forecast cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// DashboardConfig controls which upcoming hours get an outfit.
type DashboardConfig struct {
	KeyHours      []dashboard.KeyHour `yaml:"keyHours"`
	LookaheadDays int                 `yaml:"lookaheadDays"`
	MaxUpcoming   int                 `yaml:"maxUpcoming"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, origin := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		cfg.HTTP.AllowedOrigins = origins
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("FORECAST_API_BASE_URL"); v != "" {
		cfg.Forecast.APIBaseURL = v
	}
	if v := os.Getenv("FORECAST_LATITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Forecast.Latitude = parsed
		}
	}
	if v := os.Getenv("FORECAST_LONGITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Forecast.Longitude = parsed
		}
	}
	if v := os.Getenv("FORECAST_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.Days = parsed
		}
	}
	if v := os.Getenv("FORECAST_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Forecast.CacheTTL = parsed
		}
	}
	if v := os.Getenv("FORECAST_REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Forecast.RefreshInterval = parsed
		}
	}
	if v := os.Getenv("FORECAST_VALKEY_ENABLED"); v != "" {
		cfg.Forecast.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("FORECAST_VALKEY_ADDR"); v != "" {
		cfg.Forecast.Valkey.Addr = v
	}
}

func defaultConfig() *Config {
	dash := dashboard.DefaultConfig()
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Forecast: ForecastConfig{
			APIBaseURL:      "https://api.open-meteo.com",
			Latitude:        -31.893,
			Longitude:       115.952,
			Days:            8,
			Timeout:         10 * time.Second,
			CacheTTL:        dash.CacheTTL,
			RefreshInterval: 15 * time.Minute,
			Valkey: ValkeyConfig{
				Enabled: false,
				Addr:    "",
				Prefix:  "advisor",
			},
		},
		Dashboard: DashboardConfig{
			KeyHours:      dash.KeyHours,
			LookaheadDays: dash.LookaheadDays,
			MaxUpcoming:   dash.MaxUpcoming,
		},
		Outfit:      outfit.DefaultConfig(),
		Shifts:      shiftscore.DefaultConfig(),
		Clothesline: clothesline.DefaultConfig(),
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Forecast.APIBaseURL) == "" {
		return errors.New("forecast.apiBaseUrl cannot be empty")
	}
	if c.Forecast.Latitude < -90 || c.Forecast.Latitude > 90 {
		return errors.New("forecast.latitude must be within [-90, 90]")
	}
	if c.Forecast.Longitude < -180 || c.Forecast.Longitude > 180 {
		return errors.New("forecast.longitude must be within [-180, 180]")
	}
	// The shift report needs Shifts.Days full days counted from today's midnight.
	if c.Forecast.Days < c.Shifts.Days {
		return fmt.Errorf("forecast.days (%d) must cover shifts.days (%d)", c.Forecast.Days, c.Shifts.Days)
	}
	if c.Forecast.Days > 16 {
		return errors.New("forecast.days cannot exceed 16")
	}
	if c.Forecast.CacheTTL < 0 {
		return errors.New("forecast.cacheTtl cannot be negative")
	}
	if c.Forecast.RefreshInterval < 0 {
		return errors.New("forecast.refreshInterval cannot be negative")
	}
	if c.Forecast.Valkey.Enabled && strings.TrimSpace(c.Forecast.Valkey.Addr) == "" {
		return errors.New("forecast.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if err := c.DashboardSettings().Validate(); err != nil {
		return err
	}
	if err := c.Outfit.Validate(); err != nil {
		return fmt.Errorf("outfit: %w", err)
	}
	if err := c.Shifts.Validate(); err != nil {
		return fmt.Errorf("shifts: %w", err)
	}
	if err := c.Clothesline.Validate(); err != nil {
		return err
	}
	return nil
}

// DashboardSettings combines the layout with the forecast cache policy.
func (c *Config) DashboardSettings() dashboard.Config {
	return dashboard.Config{
		KeyHours:      c.Dashboard.KeyHours,
		LookaheadDays: c.Dashboard.LookaheadDays,
		MaxUpcoming:   c.Dashboard.MaxUpcoming,
		CacheTTL:      c.Forecast.CacheTTL,
		CacheKey:      fmt.Sprintf("forecast:%.3f:%.3f", c.Forecast.Latitude, c.Forecast.Longitude),
		FetchTimeout:  c.Forecast.Timeout + 5*time.Second,
	}
}
