package models

import "time"

// Calendar days are stored as "YYYY-MM-DD" so range filters compare the same
// way on PostgreSQL and SQLite.

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func parseDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatDate is the storage form of a calendar day.
func FormatDate(t time.Time) string {
	return formatDate(t)
}
