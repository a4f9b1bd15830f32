package view

import "fmt"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// Elapsed describes how long before now (both epoch seconds) timestamp was.
// Months are 30 days and years 365 days. Timestamps in the future read as
// "just now".
func Elapsed(now, timestamp int64) string {
	diff := now - timestamp
	switch {
	case diff < secondsPerMinute:
		return "just now"
	case diff < secondsPerHour:
		return ago(diff/secondsPerMinute, "minute")
	case diff < secondsPerDay:
		return ago(diff/secondsPerHour, "hour")
	}

	days := diff / secondsPerDay
	switch {
	case days < 30:
		return ago(days, "day")
	case days < 365:
		return ago(days/30, "month")
	default:
		return ago(days/365, "year")
	}
}

func ago(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
