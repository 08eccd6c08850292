package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/forecast-advisor/internal/bootstrap"
	"github.com/yanqian/forecast-advisor/internal/domain/clothesline"
	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/domain/outfit"
	"github.com/yanqian/forecast-advisor/internal/domain/shiftscore"
	"github.com/yanqian/forecast-advisor/internal/infra/config"
	"github.com/yanqian/forecast-advisor/internal/infra/forecaststore"
	"github.com/yanqian/forecast-advisor/internal/infra/openmeteo"
)

func provideOutfitAdvisor(cfg *config.Config) outfit.Advisor {
	return outfit.NewAdvisor(cfg.Outfit)
}

func provideShiftScorer(cfg *config.Config) shiftscore.Scorer {
	return shiftscore.NewScorer(cfg.Shifts)
}

func provideClotheslinePlanner(cfg *config.Config) clothesline.Planner {
	return clothesline.NewPlanner(cfg.Clothesline)
}

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	return cfg.DashboardSettings()
}

func provideForecastClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(openmeteo.Config{
		BaseURL:      cfg.Forecast.APIBaseURL,
		Latitude:     cfg.Forecast.Latitude,
		Longitude:    cfg.Forecast.Longitude,
		ForecastDays: cfg.Forecast.Days,
		Timeout:      cfg.Forecast.Timeout,
	})
}

func provideForecastStore(cfg *config.Config, logger *slog.Logger) dashboard.ForecastStore {
	if cfg.Forecast.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return forecaststore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return forecaststore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("forecast valkey store enabled", "addr", cfg.Forecast.Valkey.Addr)
			return forecaststore.NewValkeyStore(client, cfg.Forecast.Valkey.Prefix)
		}
	}
	return forecaststore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Forecast.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Forecast.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Forecast.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideRefresher(svc dashboard.Service) bootstrap.Refresher {
	return svc
}
