package timeutil

import (
	"time"
)

// Kigali is the Rwanda timezone (CAT, UTC+2). Billing dates are computed
// in local time so "today" matches the operator's calendar day.
var Kigali *time.Location

func init() {
	var err error
	Kigali, err = time.LoadLocation("Africa/Kigali")
	if err != nil {
		// Fallback: fixed zone if tzdata is unavailable
		Kigali = time.FixedZone("CAT", 2*60*60)
	}
}

// Now returns the current time in Kigali time
func Now() time.Time {
	return time.Now().In(Kigali)
}

// Today returns the current date at midnight Kigali time, the reference
// point for all due-date comparisons
func Today() time.Time {
	return StartOfDay(time.Now())
}

// StartOfDay returns 00:00:00 Kigali time for the given time
func StartOfDay(t time.Time) time.Time {
	local := t.In(Kigali)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Kigali)
}

// StartOfMonth returns the first of the month at midnight Kigali time
func StartOfMonth(t time.Time) time.Time {
	local := t.In(Kigali)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, Kigali)
}

// ParseDate parses a YYYY-MM-DD string as a Kigali-local date
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, Kigali)
}

// Common layouts
const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "02/01/2006"
)
