package holidayfeed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/sommertheater/portal/internal/domain/holidays"
)

type icsFetcher struct {
	url    string
	client *http.Client
}

// NewICSFetcher reads holidays from the VEVENTs of an iCalendar feed.
func NewICSFetcher(url string, client *http.Client) (holidays.Fetcher, error) {
	if url == "" {
		return nil, errors.New("ics url is empty")
	}
	return &icsFetcher{url: url, client: client}, nil
}

func (f *icsFetcher) Source() holidays.Source {
	return holidays.SourceICS
}

func (f *icsFetcher) Fetch(ctx context.Context, year int, region string) ([]holidays.Holiday, error) {
	body, err := download(ctx, f.client, expandURL(f.url, year, region))
	if err != nil {
		return nil, err
	}
	return ParseICS(body, year, region)
}

// ParseICS extracts the holidays of year from an iCalendar document. An event
// covers every day from DTSTART up to its exclusive DTEND; days outside year
// are dropped.
func ParseICS(data []byte, year int, region string) ([]holidays.Holiday, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ics: %w", err)
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var out []holidays.Holiday
	seen := make(map[string]bool)
	for _, ev := range cal.Events() {
		first, last, ok := eventDays(ev)
		if !ok || last.Before(yearStart) || first.After(yearEnd) {
			continue
		}

		prop := ev.GetProperty(ics.ComponentPropertySummary)
		if prop == nil {
			continue
		}
		name := strings.TrimSpace(prop.Value)
		if name == "" {
			continue
		}

		if first.Before(yearStart) {
			first = yearStart
		}
		if last.After(yearEnd) {
			last = yearEnd
		}
		for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
			h := holidays.Holiday{
				Date:   day,
				Name:   name,
				Source: holidays.SourceICS,
				Region: region,
			}
			if seen[h.DateKey()+name] {
				continue
			}
			seen[h.DateKey()+name] = true
			out = append(out, h)
		}
	}
	return out, nil
}

// eventDays returns the first and last calendar day an event covers. A
// missing or non-advancing DTEND makes it a single day. DTEND at midnight is
// exclusive.
func eventDays(ev *ics.VEvent) (time.Time, time.Time, bool) {
	start, err := ev.GetAllDayStartAt()
	if err != nil {
		if start, err = ev.GetStartAt(); err != nil {
			return time.Time{}, time.Time{}, false
		}
	}
	first := holidays.Day(start)

	end, err := ev.GetEndAt()
	if err != nil {
		return first, first, true
	}
	last := holidays.Day(end)
	if h, m, s := end.Clock(); h == 0 && m == 0 && s == 0 {
		last = last.AddDate(0, 0, -1)
	}
	if last.Before(first) {
		last = first
	}
	return first, last, true
}
