package forecaststore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/forecast-advisor/internal/domain/weather"
	"github.com/yanqian/forecast-advisor/internal/domain/weather/weathertest"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "forecast")
	require.NoError(t, err)
	require.False(t, ok)

	f := weathertest.Forecast(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 1, nil)
	require.NoError(t, store.Save(ctx, "forecast", f, 0))

	got, ok, err := store.Get(ctx, "forecast")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Hourly, 24)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "forecast", weather.Forecast{Source: "test"}, 30*time.Minute))

	now = now.Add(29 * time.Minute)
	got, ok, err := store.Get(ctx, "forecast")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "test", got.Source)

	now = now.Add(time.Minute)
	_, ok, err = store.Get(ctx, "forecast")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, store.entries)
}
