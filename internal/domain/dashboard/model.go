package dashboard

import (
	"context"
	"time"

	"github.com/yanqian/forecast-advisor/internal/domain/clothesline"
	"github.com/yanqian/forecast-advisor/internal/domain/outfit"
	"github.com/yanqian/forecast-advisor/internal/domain/shiftscore"
	"github.com/yanqian/forecast-advisor/internal/domain/weather"
)

// ForecastProvider fetches a fresh forecast from upstream.
type ForecastProvider interface {
	Fetch(ctx context.Context) (weather.Forecast, error)
}

// ForecastStore caches normalized forecasts.
type ForecastStore interface {
	Get(ctx context.Context, key string) (weather.Forecast, bool, error)
	Save(ctx context.Context, key string, forecast weather.Forecast, ttl time.Duration) error
}

// Location describes where and in which timezone the forecast applies.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// OutfitSlot is a recommendation for one labelled hour.
type OutfitSlot struct {
	Label          string                `json:"label"`
	Time           time.Time             `json:"time"`
	Weather        weather.Snapshot      `json:"weather"`
	Recommendation outfit.Recommendation `json:"recommendation"`
}

// Dashboard is everything the three column view renders.
type Dashboard struct {
	ID          string                  `json:"id"`
	GeneratedAt time.Time               `json:"generatedAt"`
	FetchedAt   time.Time               `json:"fetchedAt"`
	Location    Location                `json:"location"`
	Now         *OutfitSlot             `json:"now,omitempty"`
	Upcoming    []OutfitSlot            `json:"upcoming"`
	Clothesline []clothesline.Day       `json:"clothesline"`
	Shifts      []shiftscore.ShiftScore `json:"shifts"`
	Warnings    []string                `json:"warnings,omitempty"`
}
