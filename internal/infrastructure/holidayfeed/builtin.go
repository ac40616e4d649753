package holidayfeed

import (
	"context"
	"sort"
	"time"

	"github.com/sommertheater/portal/internal/domain/holidays"
)

type builtinFetcher struct{}

// NewBuiltinFetcher computes the German national holidays.
func NewBuiltinFetcher() holidays.Fetcher {
	return builtinFetcher{}
}

func (builtinFetcher) Source() holidays.Source {
	return holidays.SourceBuiltin
}

func (builtinFetcher) Fetch(_ context.Context, year int, region string) ([]holidays.Holiday, error) {
	return GermanHolidays(year, region), nil
}

// GermanHolidays returns the nationwide public holidays of year in date order.
func GermanHolidays(year int, region string) []holidays.Holiday {
	easter := EasterSunday(year)
	day := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	}

	entries := []struct {
		date time.Time
		name string
	}{
		{day(time.January, 1), "Neujahr"},
		{easter.AddDate(0, 0, -2), "Karfreitag"},
		{easter.AddDate(0, 0, 1), "Ostermontag"},
		{day(time.May, 1), "Tag der Arbeit"},
		{easter.AddDate(0, 0, 39), "Christi Himmelfahrt"},
		{easter.AddDate(0, 0, 50), "Pfingstmontag"},
		{day(time.October, 3), "Tag der Deutschen Einheit"},
		{day(time.December, 25), "1. Weihnachtstag"},
		{day(time.December, 26), "2. Weihnachtstag"},
	}

	out := make([]holidays.Holiday, 0, len(entries))
	for _, e := range entries {
		out = append(out, holidays.Holiday{
			Date:   e.date,
			Name:   e.name,
			Source: holidays.SourceBuiltin,
			Region: region,
		})
	}
	// Himmelfahrt can fall on May 1 (e.g. 2008); keep date order stable.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// EasterSunday computes Easter Sunday of the Gregorian calendar
// (anonymous Gregorian algorithm).
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	dayOfMonth := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)
}
