//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/forecast-advisor/internal/bootstrap"
	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/infra/config"
	"github.com/yanqian/forecast-advisor/internal/infra/openmeteo"
	"github.com/yanqian/forecast-advisor/internal/interface/console"
	httpiface "github.com/yanqian/forecast-advisor/internal/interface/http"
	"github.com/yanqian/forecast-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideOutfitAdvisor,
		provideShiftScorer,
		provideClotheslinePlanner,
		provideDashboardConfig,
		provideForecastClient,
		provideForecastStore,
		provideRefresher,
		dashboard.NewService,
		wire.Bind(new(dashboard.ForecastProvider), new(*openmeteo.Client)),
		console.NewRenderer,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
