// Package util holds wall-clock helpers shared by the forecast lookups.
package util

import "time"

// TruncateHour drops the wall clock minutes and below from t. It steps back from the instant itself,
// so half-hour offsets keep their local hour and a repeated hour after a DST fall-back stays distinct.
func TruncateHour(t time.Time) time.Time {
	past := time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	return t.Add(-past)
}

// StartOfDay returns local midnight of t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
