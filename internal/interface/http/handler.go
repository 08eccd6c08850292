package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/domain/weather"
	"github.com/yanqian/forecast-advisor/internal/interface/console"
	apperrors "github.com/yanqian/forecast-advisor/pkg/errors"
)

// Handler wires the HTTP transport to the dashboard service.
type Handler struct {
	svc      dashboard.Service
	renderer *console.Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc dashboard.Service, renderer *console.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		renderer: renderer,
		logger:   logger.With("component", "http.handler"),
		now:      time.Now,
	}
}

// outfitRequest is one forecast hour supplied by the caller.
type outfitRequest struct {
	Time                *time.Time `json:"time"`
	ApparentTemperature *float64   `json:"apparentTemperature" binding:"required"`
	Temperature         *float64   `json:"temperature"`
	Humidity            float64    `json:"humidity" binding:"gte=0,lte=100"`
	DewPoint            *float64   `json:"dewPoint"`
	Precipitation       float64    `json:"precipitation" binding:"gte=0"`
	Rain                float64    `json:"rain" binding:"gte=0"`
	Showers             float64    `json:"showers" binding:"gte=0"`
	WindSpeed           float64    `json:"windSpeed" binding:"gte=0"`
	CloudCover          float64    `json:"cloudCover" binding:"gte=0,lte=100"`
	IsDaylight          *bool      `json:"isDaylight" binding:"required"`
}

func (r outfitRequest) snapshot() weather.Snapshot {
	snap := weather.Snapshot{
		ApparentTemperature: *r.ApparentTemperature,
		Temperature:         r.Temperature,
		Humidity:            r.Humidity,
		DewPoint:            r.DewPoint,
		Precipitation:       r.Precipitation,
		Rain:                r.Rain,
		Showers:             r.Showers,
		WindSpeed:           r.WindSpeed,
		CloudCover:          r.CloudCover,
		IsDaylight:          *r.IsDaylight,
	}
	if r.Time != nil {
		snap.Time = *r.Time
	}
	return snap
}

// Dashboard returns the full three column view as JSON.
func (h *Handler) Dashboard(c *gin.Context) {
	dash, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, dash)
}

// DashboardText renders the dashboard the way the console report prints it.
func (h *Handler) DashboardText(c *gin.Context) {
	dash, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, dash); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "render_failed", "failed to render dashboard", err))
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// RecommendOutfit evaluates the outfit rules for a caller supplied hour.
func (h *Handler) RecommendOutfit(c *gin.Context) {
	var req outfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, h.svc.Recommend(req.snapshot()))
}

// OutfitAt looks up the forecast hour containing ?at= (RFC3339, default now).
func (h *Handler) OutfitAt(c *gin.Context) {
	at := h.now()
	if raw := strings.TrimSpace(c.Query("at")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "at must be an RFC3339 timestamp", err))
			return
		}
		at = parsed
	}
	slot, err := h.svc.OutfitAt(c.Request.Context(), at)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, slot)
}

// Shifts returns the 7 day shift opportunity report.
func (h *Handler) Shifts(c *gin.Context) {
	report, err := h.svc.Shifts(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": report})
}

// Clothesline returns the washing outlook.
func (h *Handler) Clothesline(c *gin.Context) {
	days, err := h.svc.Clothesline(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
