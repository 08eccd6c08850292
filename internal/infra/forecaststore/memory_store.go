package forecaststore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/domain/weather"
)

type entry struct {
	forecast  weather.Forecast
	expiresAt time.Time
}

// MemoryStore keeps forecasts in process memory; used when Valkey is disabled or unreachable.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements dashboard.ForecastStore.
func (s *MemoryStore) Get(_ context.Context, key string) (weather.Forecast, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return weather.Forecast{}, false, nil
	}
	if s.expired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return weather.Forecast{}, false, nil
	}
	return e.forecast, true, nil
}

// Save caches the forecast; a non-positive ttl keeps it until overwritten.
func (s *MemoryStore) Save(_ context.Context, key string, forecast weather.Forecast, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[key] = entry{forecast: forecast, expiresAt: exp}
	return nil
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !s.now().Before(ts)
}

var _ dashboard.ForecastStore = (*MemoryStore)(nil)
