// Command report prints the dashboard once to stdout, like the original terminal script.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yanqian/forecast-advisor/internal/domain/clothesline"
	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/domain/outfit"
	"github.com/yanqian/forecast-advisor/internal/domain/shiftscore"
	"github.com/yanqian/forecast-advisor/internal/infra/config"
	"github.com/yanqian/forecast-advisor/internal/infra/forecaststore"
	"github.com/yanqian/forecast-advisor/internal/infra/openmeteo"
	"github.com/yanqian/forecast-advisor/internal/interface/console"
	"github.com/yanqian/forecast-advisor/pkg/logger"
)

func main() {
	asJSON := flag.Bool("json", false, "print the dashboard as JSON instead of text")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline for fetching the forecast")
	flag.Parse()

	if os.Getenv("LOG_FORMAT") == "" {
		_ = os.Setenv("LOG_FORMAT", "text")
	}
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client := openmeteo.NewClient(openmeteo.Config{
		BaseURL:      cfg.Forecast.APIBaseURL,
		Latitude:     cfg.Forecast.Latitude,
		Longitude:    cfg.Forecast.Longitude,
		ForecastDays: cfg.Forecast.Days,
		Timeout:      cfg.Forecast.Timeout,
	})
	svc := dashboard.NewService(
		cfg.DashboardSettings(),
		client,
		forecaststore.NewMemoryStore(),
		outfit.NewAdvisor(cfg.Outfit),
		shiftscore.NewScorer(cfg.Shifts),
		clothesline.NewPlanner(cfg.Clothesline),
		log,
	)

	dash, err := svc.Dashboard(ctx)
	if err != nil {
		log.Error("build dashboard", "error", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dash); err != nil {
			log.Error("encode dashboard", "error", err)
			os.Exit(1)
		}
		return
	}
	if err := console.NewRenderer().Render(os.Stdout, dash); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
