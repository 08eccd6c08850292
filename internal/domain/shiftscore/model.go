package shiftscore

import "time"

// Shift is a named daily work window.
type Shift string

const (
	Morning Shift = "morning"
	Lunch   Shift = "lunch"
	Dinner  Shift = "dinner"
	Late    Shift = "late"
)

// Contribution is one fired rule and its signed weight.
type Contribution struct {
	Reason string  `json:"reason"`
	Weight float64 `json:"weight"`
}

// ShiftScore is the opportunity assessment of one shift on one day.
type ShiftScore struct {
	DayOffset     int            `json:"dayOffset"`
	Date          string         `json:"date"`
	Weekday       string         `json:"weekday"`
	Shift         Shift          `json:"shift"`
	Hour          int            `json:"hour"`
	Time          time.Time      `json:"time"`
	Score         float64        `json:"score"`
	Contributions []Contribution `json:"contributions"`
	Label         string         `json:"label"`
}

// Reasons returns the annotated reason strings in firing order.
func (s ShiftScore) Reasons() []string {
	out := make([]string, 0, len(s.Contributions))
	for _, c := range s.Contributions {
		out = append(out, c.Reason)
	}
	return out
}
