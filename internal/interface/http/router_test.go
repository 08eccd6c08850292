package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/forecast-advisor/internal/domain/clothesline"
	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/domain/outfit"
	"github.com/yanqian/forecast-advisor/internal/domain/shiftscore"
	"github.com/yanqian/forecast-advisor/internal/domain/weather"
	"github.com/yanqian/forecast-advisor/internal/infra/config"
	"github.com/yanqian/forecast-advisor/internal/interface/console"
	apperrors "github.com/yanqian/forecast-advisor/pkg/errors"
)

func TestRouter_DashboardSuccess(t *testing.T) {
	svc := &stubDashboard{
		dashboardFn: func(ctx context.Context) (dashboard.Dashboard, error) {
			return dashboard.Dashboard{ID: "dash-1", Upcoming: []dashboard.OutfitSlot{}}, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/dashboard", "", newRouterUnderTest(t, svc, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	var got dashboard.Dashboard
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "dash-1", got.ID)
}

func TestRouter_RequestIDIsPropagated(t *testing.T) {
	server := newRouterUnderTest(t, &stubDashboard{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRouter_DashboardText(t *testing.T) {
	svc := &stubDashboard{
		dashboardFn: func(ctx context.Context) (dashboard.Dashboard, error) {
			return dashboard.Dashboard{
				GeneratedAt: time.Date(2024, 7, 5, 9, 0, 0, 0, time.UTC),
				Location:    dashboard.Location{Timezone: "UTC"},
			}, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/dashboard/text", "", newRouterUnderTest(t, svc, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "text/plain; charset=utf-8", recorder.Header().Get("Content-Type"))
	require.Contains(t, recorder.Body.String(), "🧥 What to Wear")
	require.Contains(t, recorder.Body.String(), "🚗 Driver Opportunity")
}

func TestRouter_RecommendOutfit(t *testing.T) {
	var captured weather.Snapshot
	svc := &stubDashboard{
		recommendFn: func(snap weather.Snapshot) outfit.Recommendation {
			captured = snap
			return outfit.Recommendation{Top: []string{"Jumper"}, Bottom: []string{"Long pants"}, Accessories: []string{}, Reasons: []string{"Cool"}}
		},
	}

	body := `{"apparentTemperature": 14.5, "temperature": 16, "humidity": 60, "windSpeed": 12, "isDaylight": false}`
	recorder := performRequest(http.MethodPost, "/api/v1/outfits", body, newRouterUnderTest(t, svc, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	require.Equal(t, 14.5, captured.ApparentTemperature)
	require.NotNil(t, captured.Temperature)
	require.Equal(t, 16.0, *captured.Temperature)
	require.Nil(t, captured.DewPoint)
	require.False(t, captured.IsDaylight)

	var got outfit.Recommendation
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, []string{"Jumper"}, got.Top)
}

func TestRouter_RecommendOutfitValidation(t *testing.T) {
	tests := map[string]string{
		"missing apparent temperature": `{"isDaylight": true}`,
		"missing daylight flag":        `{"apparentTemperature": 20}`,
		"humidity out of range":        `{"apparentTemperature": 20, "isDaylight": true, "humidity": 150}`,
		"negative precipitation":       `{"apparentTemperature": 20, "isDaylight": true, "precipitation": -1}`,
		"wrong type":                   `{"apparentTemperature": "warm", "isDaylight": true}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			recorder := performRequest(http.MethodPost, "/api/v1/outfits", body, newRouterUnderTest(t, &stubDashboard{}, nil))
			require.Equal(t, http.StatusBadRequest, recorder.Code)
			errBody := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, apperrors.CodeInvalidInput, errBody["error"]["code"])
		})
	}
}

func TestRouter_OutfitAt(t *testing.T) {
	var requested time.Time
	svc := &stubDashboard{
		outfitAtFn: func(ctx context.Context, at time.Time) (dashboard.OutfitSlot, error) {
			requested = at
			return dashboard.OutfitSlot{Label: "Fri 18:00", Time: at}, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/outfits?at=2024-07-05T18:00:00%2B08:00", "", newRouterUnderTest(t, svc, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, requested.Equal(time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC)))

	recorder = performRequest(http.MethodGet, "/api/v1/outfits?at=tomorrow", "", newRouterUnderTest(t, svc, nil))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, apperrors.CodeInvalidInput, decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_DomainErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "missing data", err: apperrors.Wrap(apperrors.CodeMissingData, "no forecast for 2024-07-05T18:00", nil), status: http.StatusNotFound, code: apperrors.CodeMissingData},
		{name: "precondition", err: apperrors.Wrap(apperrors.CodePreconditionFailed, "forecast too short", nil), status: http.StatusUnprocessableEntity, code: apperrors.CodePreconditionFailed},
		{name: "upstream", err: apperrors.Wrap(apperrors.CodeForecastUnavailable, "failed to fetch forecast", errors.New("timeout")), status: http.StatusBadGateway, code: apperrors.CodeForecastUnavailable},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubDashboard{
				shiftsFn: func(ctx context.Context) ([]shiftscore.ShiftScore, error) { return nil, tc.err },
			}
			recorder := performRequest(http.MethodGet, "/api/v1/shifts", "", newRouterUnderTest(t, svc, nil))
			require.Equal(t, tc.status, recorder.Code)
			errBody := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, tc.code, errBody["error"]["code"])
			require.NotEmpty(t, errBody["error"]["message"])
		})
	}
}

func TestRouter_Clothesline(t *testing.T) {
	svc := &stubDashboard{
		clotheslineFn: func(ctx context.Context) ([]clothesline.Day, error) {
			return []clothesline.Day{{Weekday: "Friday", Dry: true}}, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/clothesline", "", newRouterUnderTest(t, svc, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Days []clothesline.Day `json:"days"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got.Days, 1)
	require.True(t, got.Days[0].Dry)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := &config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	server := newRouterUnderTest(t, &stubDashboard{}, cfg)

	first := performRequest(http.MethodGet, "/healthz", "", server)
	require.Equal(t, http.StatusOK, first.Code)

	second := performRequest(http.MethodGet, "/healthz", "", server)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	errBody := decodeErrorBody(t, second.Body.Bytes())
	require.Equal(t, "rate_limit_exceeded", errBody["error"]["code"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	recorder := performRequest(http.MethodOptions, "/api/v1/dashboard", "", newRouterUnderTest(t, &stubDashboard{}, nil))
	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc dashboard.Service, rateLimit *config.RateLimitConfig) *http.Server {
	t.Helper()
	logger := newTestLogger()
	handler := NewHandler(svc, console.NewRenderer(), logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	if rateLimit != nil {
		cfg.HTTP.RateLimit = *rateLimit
	}
	return NewRouter(cfg, handler, logger)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubDashboard struct {
	dashboardFn   func(ctx context.Context) (dashboard.Dashboard, error)
	outfitAtFn    func(ctx context.Context, at time.Time) (dashboard.OutfitSlot, error)
	recommendFn   func(snap weather.Snapshot) outfit.Recommendation
	shiftsFn      func(ctx context.Context) ([]shiftscore.ShiftScore, error)
	clotheslineFn func(ctx context.Context) ([]clothesline.Day, error)
}

func (s *stubDashboard) Dashboard(ctx context.Context) (dashboard.Dashboard, error) {
	if s.dashboardFn != nil {
		return s.dashboardFn(ctx)
	}
	return dashboard.Dashboard{}, nil
}

func (s *stubDashboard) OutfitAt(ctx context.Context, at time.Time) (dashboard.OutfitSlot, error) {
	if s.outfitAtFn != nil {
		return s.outfitAtFn(ctx, at)
	}
	return dashboard.OutfitSlot{}, nil
}

func (s *stubDashboard) Recommend(snap weather.Snapshot) outfit.Recommendation {
	if s.recommendFn != nil {
		return s.recommendFn(snap)
	}
	return outfit.Recommendation{}
}

func (s *stubDashboard) Shifts(ctx context.Context) ([]shiftscore.ShiftScore, error) {
	if s.shiftsFn != nil {
		return s.shiftsFn(ctx)
	}
	return []shiftscore.ShiftScore{}, nil
}

func (s *stubDashboard) Clothesline(ctx context.Context) ([]clothesline.Day, error) {
	if s.clotheslineFn != nil {
		return s.clotheslineFn(ctx)
	}
	return []clothesline.Day{}, nil
}

func (s *stubDashboard) Refresh(ctx context.Context) error {
	return nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestResolveOrigin(t *testing.T) {
	allowed := []string{"https://dash.example", "https://admin.example"}
	require.Equal(t, "https://ADMIN.example", resolveOrigin("https://ADMIN.example", allowed))
	require.Equal(t, "https://dash.example", resolveOrigin("https://evil.example", allowed))
	require.Equal(t, "https://dash.example", resolveOrigin("", allowed))
}
