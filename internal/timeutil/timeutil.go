package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD) used by FOGIS.
const DateLayout = "2006-01-02"

// Default server-side match window relative to today.
const (
	defaultWindowPastDays   = 7
	defaultWindowFutureDays = 365
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DefaultMatchWindow returns the default server-side date range for the match
// list endpoint: one week back through one year ahead, with today as the
// saved-date marker.
func DefaultMatchWindow(now time.Time) (from, to, saved string) {
	from = FormatDate(now.AddDate(0, 0, -defaultWindowPastDays))
	to = FormatDate(now.AddDate(0, 0, defaultWindowFutureDays))
	saved = FormatDate(now)
	return from, to, saved
}
