// Package console renders the dashboard as plain text with emoji, the way the terminal report
// and GET /dashboard/text present it.
package console

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yanqian/forecast-advisor/internal/domain/clothesline"
	"github.com/yanqian/forecast-advisor/internal/domain/dashboard"
	"github.com/yanqian/forecast-advisor/internal/domain/shiftscore"
)

const rainEmojiThreshold = 0.3

var labelBadges = map[string]string{
	"very_high": "🤑🤑",
	"high":      "🤑",
	"moderate":  "📈",
	"low":       "💤",
}

// Renderer writes dashboards as text. A cases.Caser is stateful, so one is built per call and the
// Renderer itself is safe to share.
type Renderer struct {
	lang language.Tag
}

// NewRenderer builds a renderer with English title casing.
func NewRenderer() *Renderer {
	return &Renderer{lang: language.English}
}

// Render writes all three columns one after another.
func (r *Renderer) Render(w io.Writer, d dashboard.Dashboard) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Forecast Advisor · %s (%s)\n", d.GeneratedAt.Format("Monday 2 January 2006 15:04"), d.Location.Timezone)
	for _, warning := range d.Warnings {
		fmt.Fprintf(&b, "⚠️ %s\n", warning)
	}

	b.WriteString("\n🧥 What to Wear\n")
	if d.Now != nil {
		r.writeOutfit(&b, *d.Now)
	}
	for _, slot := range d.Upcoming {
		r.writeOutfit(&b, slot)
	}

	b.WriteString("\n🧺 Clothesline Forecast\n")
	r.writeClothesline(&b, d.Clothesline)

	b.WriteString("\n🚗 Driver Opportunity\n")
	r.writeShifts(&b, d.Shifts)

	_, err := io.WriteString(w, b.String())
	return err
}

// OutfitLine renders one slot as its header and item lines.
func (r *Renderer) OutfitLine(slot dashboard.OutfitSlot) string {
	var b strings.Builder
	r.writeOutfit(&b, slot)
	return b.String()
}

func (r *Renderer) writeOutfit(b *strings.Builder, slot dashboard.OutfitSlot) {
	temp := math.Round(slot.Weather.ApparentTemperature)
	emojis := temperatureEmoji(temp)
	if slot.Weather.Rain > rainEmojiThreshold || slot.Weather.Showers > rainEmojiThreshold {
		emojis += " 🌧️"
	}
	header := fmt.Sprintf("⏰ %s", slot.Label)
	if emojis = strings.TrimSpace(emojis); emojis != "" {
		header += " " + emojis
	}
	fmt.Fprintf(b, "%s %.0f°\n", header, temp)

	items := slot.Recommendation.Items()
	if len(items) == 0 {
		b.WriteString("None.\n")
		return
	}
	for i, item := range items {
		items[i] = capitalize(item)
	}
	b.WriteString(strings.Join(items, ", ") + ".\n")
}

func temperatureEmoji(temp float64) string {
	var out string
	switch {
	case temp < 7:
		out = "❄️❄️❄️"
	case temp < 12:
		out = "❄️❄️"
	case temp < 17:
		out = "❄️"
	}
	switch {
	case temp > 32:
		out += "☀️☀️☀️"
	case temp > 23:
		out += "☀️☀️"
	case temp > 18:
		out += "☀️"
	}
	return out
}

func (r *Renderer) writeClothesline(b *strings.Builder, days []clothesline.Day) {
	if len(days) == 0 {
		b.WriteString("No daily forecast available.\n")
		return
	}
	for _, day := range days {
		if day.Dry {
			fmt.Fprintf(b, "👕 %s (%s): Good day to hang washing\n", day.Weekday, day.Date.Format("2006-01-02"))
			continue
		}
		if day.PrecipitationSum == nil {
			fmt.Fprintf(b, "❔ %s (%s): No rainfall total, check again later\n", day.Weekday, day.Date.Format("2006-01-02"))
			continue
		}
		fmt.Fprintf(b, "🌧️ %s (%s): Rain expected, bring washing in (%.1f mm)\n", day.Weekday, day.Date.Format("2006-01-02"), *day.PrecipitationSum)
	}
}

func (r *Renderer) writeShifts(b *strings.Builder, scores []shiftscore.ShiftScore) {
	if len(scores) == 0 {
		b.WriteString("No shift report available.\n")
		return
	}
	day := -1
	for _, score := range scores {
		if score.DayOffset != day {
			if day >= 0 {
				b.WriteString("\n")
			}
			day = score.DayOffset
			fmt.Fprintf(b, "%s\n", score.Weekday)
		}
		fmt.Fprintf(b, "- %s: %s (%+g)\n", cases.Title(r.lang).String(string(score.Shift)), r.Label(score.Label), score.Score)
		if reasons := score.Reasons(); len(reasons) > 0 {
			fmt.Fprintf(b, "  • Factors: %s\n", strings.Join(reasons, ", "))
		}
	}
}

// Label renders an opportunity label with its badge, e.g. "🤑 High".
func (r *Renderer) Label(label string) string {
	text := cases.Title(r.lang).String(strings.ReplaceAll(label, "_", " "))
	if badge, ok := labelBadges[label]; ok {
		return badge + " " + text
	}
	return text
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
