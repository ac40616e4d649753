// Package httputil contains small helpers shared by the HTTP handlers.
package httputil

import (
	"strconv"
	"strings"
	"time"
)

// ConvertToInt parses s and returns 0 when it is not a number.
func ConvertToInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ParseDate parses a calendar date (YYYY-MM-DD) in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), loc)
}

// ContentDisposition builds an attachment header value.
func ContentDisposition(filename string) string {
	return `attachment; filename="` + strings.ReplaceAll(filename, `"`, "") + `"`
}
