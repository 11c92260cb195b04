// Package daykey maps points in time to calendar-day identifiers.
// A day key is a YYYY-MM-DD string in the local calendar and is the only
// unit of time granularity the rest of the app reasons about.
package daykey

import "time"

// Layout is the reference layout for day keys.
const Layout = "2006-01-02"

// displayLayout is a medium-style date rendering for presentation only.
// It is never persisted or compared.
const displayLayout = "Mon, Jan 2 2006"

// Of renders t as a day key in t's location.
func Of(t time.Time) string {
	return t.Format(Layout)
}

// Prev returns the key for the calendar day immediately before t.
// AddDate is calendar-aware, so month/year boundaries and DST transitions
// resolve correctly.
func Prev(t time.Time) string {
	return Of(t.AddDate(0, 0, -1))
}

// Today returns the key for the current local day.
func Today() string {
	return Of(time.Now())
}

// Yesterday returns the key for the local day before today.
func Yesterday() string {
	return Prev(time.Now())
}

// Display renders t for the title bar.
func Display(t time.Time) string {
	return t.Format(displayLayout)
}

// Valid reports whether s is a well-formed day key.
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil && len(s) == len(Layout)
}

// Parse converts a day key back to a time at local midnight.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, time.Local)
}
