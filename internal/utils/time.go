package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// TodayISO returns today's date as YYYY-MM-DD in local timezone.
func TodayISO() string {
	return time.Now().Format(layoutDate)
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDateBR renders YYYY-MM-DD as DD/MM/YYYY for documents; anything
// unparseable passes through untouched.
func FormatDateBR(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return t.Format("02/01/2006")
}
