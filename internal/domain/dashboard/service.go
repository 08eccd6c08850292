package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/yanqian/forecast-advisor/internal/domain/clothesline"
	"github.com/yanqian/forecast-advisor/internal/domain/outfit"
	"github.com/yanqian/forecast-advisor/internal/domain/shiftscore"
	"github.com/yanqian/forecast-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/forecast-advisor/pkg/errors"
	"github.com/yanqian/forecast-advisor/pkg/util"
)

// Service assembles the advisory views from a cached forecast.
type Service interface {
	Dashboard(ctx context.Context) (Dashboard, error)
	OutfitAt(ctx context.Context, at time.Time) (OutfitSlot, error)
	Recommend(snap weather.Snapshot) outfit.Recommendation
	Shifts(ctx context.Context) ([]shiftscore.ShiftScore, error)
	Clothesline(ctx context.Context) ([]clothesline.Day, error)
	Refresh(ctx context.Context) error
}

type service struct {
	cfg      Config
	provider ForecastProvider
	store    ForecastStore
	advisor  outfit.Advisor
	scorer   shiftscore.Scorer
	planner  clothesline.Planner
	logger   *slog.Logger
	group    singleflight.Group
	now      func() time.Time
}

// NewService wires the dashboard domain.
func NewService(
	cfg Config,
	provider ForecastProvider,
	store ForecastStore,
	advisor outfit.Advisor,
	scorer shiftscore.Scorer,
	planner clothesline.Planner,
	logger *slog.Logger,
) Service {
	return &service{
		cfg:      cfg,
		provider: provider,
		store:    store,
		advisor:  advisor,
		scorer:   scorer,
		planner:  planner,
		logger:   logger.With("component", "dashboard.service"),
		now:      time.Now,
	}
}

func (s *service) Dashboard(ctx context.Context) (Dashboard, error) {
	series, err := s.series(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	now := s.now().In(series.Location())
	f := series.Forecast()

	out := Dashboard{
		ID:          uuid.NewString(),
		GeneratedAt: now,
		FetchedAt:   f.FetchedAt,
		Location: Location{
			Latitude:  f.Latitude,
			Longitude: f.Longitude,
			Timezone:  series.Location().String(),
		},
		Upcoming:    s.upcoming(series, now),
		Clothesline: s.planner.Plan(series),
		Shifts:      []shiftscore.ShiftScore{},
	}

	if snap, err := series.At(now); err == nil {
		out.Now = &OutfitSlot{
			Label:          "Right Now",
			Time:           snap.Time,
			Weather:        snap,
			Recommendation: s.advisor.Recommend(snap),
		}
	} else {
		s.logger.Warn("current hour missing from forecast", "at", now, "error", err)
		out.Warnings = append(out.Warnings, err.Error())
	}

	shifts, err := s.scorer.Report(series)
	if err != nil {
		s.logger.Warn("shift report unavailable", "error", err)
		out.Warnings = append(out.Warnings, err.Error())
	} else {
		out.Shifts = shifts
	}
	return out, nil
}

// upcoming walks the key hours of the next LookaheadDays days, skipping past or missing hours.
func (s *service) upcoming(series *weather.Series, now time.Time) []OutfitSlot {
	slots := make([]OutfitSlot, 0, s.cfg.MaxUpcoming)
	today := util.StartOfDay(now)
	for offset := 1; offset <= s.cfg.LookaheadDays; offset++ {
		for _, kh := range s.cfg.KeyHours {
			if len(slots) >= s.cfg.MaxUpcoming {
				return slots
			}
			at := time.Date(today.Year(), today.Month(), today.Day()+offset, kh.Hour, 0, 0, 0, today.Location())
			if !at.After(now) {
				continue
			}
			snap, err := series.At(at)
			if err != nil {
				s.logger.Debug("skipping key hour", "label", kh.Label, "at", at, "error", err)
				continue
			}
			slots = append(slots, OutfitSlot{
				Label:          fmt.Sprintf("%s (%s)", kh.Label, at.Weekday()),
				Time:           snap.Time,
				Weather:        snap,
				Recommendation: s.advisor.Recommend(snap),
			})
		}
	}
	return slots
}

func (s *service) OutfitAt(ctx context.Context, at time.Time) (OutfitSlot, error) {
	series, err := s.series(ctx)
	if err != nil {
		return OutfitSlot{}, err
	}
	snap, err := series.At(at)
	if err != nil {
		return OutfitSlot{}, err
	}
	return OutfitSlot{
		Label:          snap.Time.Format("Mon 15:04"),
		Time:           snap.Time,
		Weather:        snap,
		Recommendation: s.advisor.Recommend(snap),
	}, nil
}

func (s *service) Recommend(snap weather.Snapshot) outfit.Recommendation {
	return s.advisor.Recommend(snap)
}

func (s *service) Shifts(ctx context.Context) ([]shiftscore.ShiftScore, error) {
	series, err := s.series(ctx)
	if err != nil {
		return nil, err
	}
	return s.scorer.Report(series)
}

func (s *service) Clothesline(ctx context.Context) ([]clothesline.Day, error) {
	series, err := s.series(ctx)
	if err != nil {
		return nil, err
	}
	return s.planner.Plan(series), nil
}

// Refresh bypasses the cache and stores a fresh forecast.
func (s *service) Refresh(ctx context.Context) error {
	_, err := s.fetch(ctx)
	return err
}

func (s *service) series(ctx context.Context) (*weather.Series, error) {
	f, err := s.forecast(ctx)
	if err != nil {
		return nil, err
	}
	return weather.NewSeries(f), nil
}

func (s *service) forecast(ctx context.Context) (weather.Forecast, error) {
	cached, ok, err := s.store.Get(ctx, s.cfg.CacheKey)
	if err != nil {
		s.logger.Warn("forecast cache lookup failed", "error", err)
	} else if ok {
		return cached, nil
	}
	return s.fetch(ctx)
}

// fetch collapses concurrent misses into a single provider call. The shared
// call runs detached from any one caller so a cancelled request cannot fail
// the others waiting on it.
func (s *service) fetch(ctx context.Context) (weather.Forecast, error) {
	ch := s.group.DoChan(s.cfg.CacheKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.FetchTimeout)
		defer cancel()

		f, err := s.provider.Fetch(fetchCtx)
		if err != nil {
			return weather.Forecast{}, apperrors.Wrap(apperrors.CodeForecastUnavailable, "failed to fetch forecast", err)
		}
		if f.FetchedAt.IsZero() {
			f.FetchedAt = s.now()
		}
		if err := s.store.Save(fetchCtx, s.cfg.CacheKey, f, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("forecast cache save failed", "error", err)
		}
		s.logger.Info("forecast fetched", "hours", len(f.Hourly), "days", len(f.Daily), "source", f.Source)
		return f, nil
	})

	select {
	case <-ctx.Done():
		return weather.Forecast{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return weather.Forecast{}, res.Err
		}
		if res.Shared {
			s.logger.Debug("forecast fetch shared with concurrent caller")
		}
		return res.Val.(weather.Forecast), nil
	}
}
