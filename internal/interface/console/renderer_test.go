package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/forecast-advisor/internal/domain/clothesline"
	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/domain/outfit"
	"github.com/yanqian/forecast-advisor/internal/domain/shiftscore"
	"github.com/yanqian/forecast-advisor/internal/domain/weather"
	"github.com/yanqian/forecast-advisor/internal/domain/weather/weathertest"
)

func TestTemperatureEmoji(t *testing.T) {
	tests := map[float64]string{
		-2: "❄️❄️❄️",
		6:  "❄️❄️❄️",
		7:  "❄️❄️",
		11: "❄️❄️",
		12: "❄️",
		16: "❄️",
		17: "",
		18: "",
		19: "☀️",
		23: "☀️",
		24: "☀️☀️",
		32: "☀️☀️",
		33: "☀️☀️☀️",
	}
	for temp, want := range tests {
		require.Equal(t, want, temperatureEmoji(temp), "temp %v", temp)
	}
}

func TestOutfitLine(t *testing.T) {
	r := NewRenderer()
	slot := dashboard.OutfitSlot{
		Label:   "Right Now",
		Weather: weather.Snapshot{ApparentTemperature: 5.4, Rain: 0.5},
		Recommendation: outfit.Recommendation{
			Top:         []string{"Thermals", "Jumper"},
			Bottom:      []string{"Thermals", "Long pants"},
			Accessories: []string{"waterproof jacket"},
		},
	}

	require.Equal(t, "⏰ Right Now ❄️❄️❄️ 🌧️ 5°\nThermals, Jumper, Long pants, Waterproof jacket.\n", r.OutfitLine(slot))
}

func TestOutfitLineWithoutItemsOrEmoji(t *testing.T) {
	r := NewRenderer()
	slot := dashboard.OutfitSlot{
		Label:          "Lunch (Tuesday)",
		Weather:        weather.Snapshot{ApparentTemperature: 17.2, Showers: 0.3},
		Recommendation: outfit.Recommendation{},
	}

	require.Equal(t, "⏰ Lunch (Tuesday) 17°\nNone.\n", r.OutfitLine(slot))
}

func TestLabel(t *testing.T) {
	r := NewRenderer()
	require.Equal(t, "🤑🤑 Very High", r.Label("very_high"))
	require.Equal(t, "🤑 High", r.Label("high"))
	require.Equal(t, "📈 Moderate", r.Label("moderate"))
	require.Equal(t, "💤 Low", r.Label("low"))
	require.Equal(t, "Quiet Night", r.Label("quiet_night"))
}

func TestRenderDashboard(t *testing.T) {
	loc := time.FixedZone("AWST", 8*60*60)
	friday := time.Date(2024, 7, 5, 0, 0, 0, 0, loc)
	d := dashboard.Dashboard{
		GeneratedAt: time.Date(2024, 7, 5, 14, 30, 0, 0, loc),
		Location:    dashboard.Location{Timezone: "AWST"},
		Now: &dashboard.OutfitSlot{
			Label:          "Right Now",
			Weather:        weather.Snapshot{ApparentTemperature: 21},
			Recommendation: outfit.Recommendation{Top: []string{"T-shirt or Singlet"}, Bottom: []string{"Shorts"}},
		},
		Clothesline: []clothesline.Day{
			{Date: friday, Weekday: "Friday", Dry: true},
			{Date: friday.AddDate(0, 0, 1), Weekday: "Saturday", PrecipitationSum: weathertest.Float(4.2)},
			{Date: friday.AddDate(0, 0, 2), Weekday: "Sunday"},
		},
		Shifts: []shiftscore.ShiftScore{
			{DayOffset: 0, Weekday: "Friday", Shift: shiftscore.Morning, Label: "low"},
			{
				DayOffset: 0, Weekday: "Friday", Shift: shiftscore.Dinner, Score: 1, Label: "moderate",
				Contributions: []shiftscore.Contribution{{Reason: "weekend dinner (+1)", Weight: 1}},
			},
			{DayOffset: 1, Weekday: "Saturday", Shift: shiftscore.Late, Score: 4.5, Label: "very_high"},
		},
		Warnings: []string{"forecast is stale"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, d))
	out := buf.String()

	require.Contains(t, out, "Forecast Advisor · Friday 5 July 2024 14:30 (AWST)\n")
	require.Contains(t, out, "⚠️ forecast is stale\n")
	require.Contains(t, out, "🧥 What to Wear\n⏰ Right Now ☀️ 21°\nT-shirt or singlet, Shorts.\n")
	require.Contains(t, out, "👕 Friday (2024-07-05): Good day to hang washing\n")
	require.Contains(t, out, "🌧️ Saturday (2024-07-06): Rain expected, bring washing in (4.2 mm)\n")
	require.Contains(t, out, "❔ Sunday (2024-07-07): No rainfall total, check again later\n")
	require.Contains(t, out, "Friday\n- Morning: 💤 Low (+0)\n- Dinner: 📈 Moderate (+1)\n  • Factors: weekend dinner (+1)\n")
	require.Contains(t, out, "\nSaturday\n- Late: 🤑🤑 Very High (+4.5)\n")
}

func TestRenderEmptyColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, dashboard.Dashboard{}))
	require.Contains(t, buf.String(), "No daily forecast available.")
	require.Contains(t, buf.String(), "No shift report available.")
}
