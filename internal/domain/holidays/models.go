// Package holidays provides public holidays from external feeds with a
// computed fallback.
package holidays

import (
	"context"
	"errors"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
)

// ErrNoHolidays is returned when every source in the chain came back empty.
var ErrNoHolidays = errors.New("no holiday source returned data")

type Source string

const (
	SourceICS     Source = "ics"
	SourceJSON    Source = "json"
	SourceBuiltin Source = "builtin"
)

// Holiday is a single holiday on a calendar day (midnight UTC).
type Holiday struct {
	Date   time.Time
	Name   string
	Source Source
	Region string
}

// DateKey is the "2006-01-02" form of the holiday date.
func (h Holiday) DateKey() string {
	return h.Date.Format(time.DateOnly)
}

// Day truncates t to its calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Fetcher is one layer of the fallback chain.
type Fetcher interface {
	Source() Source
	Fetch(ctx context.Context, year int, region string) ([]Holiday, error)
}

type Repository interface {
	// ReplaceYear swaps all holidays stored for year and region.
	ReplaceYear(ctx context.Context, year int, region string, holidays []Holiday) error
	ListYear(ctx context.Context, year int, region string) ([]Holiday, error)
	ListBetween(ctx context.Context, from, to time.Time, region string) ([]Holiday, error)
}

// SyncResult reports which layer delivered the holidays.
type SyncResult struct {
	Year     int
	Source   Source
	Holidays []Holiday
}

type Service interface {
	// Sync runs the fetch chain for year and persists the first non-empty result.
	Sync(ctx context.Context, p *access.Principal, year int) (*SyncResult, error)
	// List reads the stored holidays of year, syncing when none are stored.
	List(ctx context.Context, year int) ([]Holiday, error)
	HolidaysBetween(ctx context.Context, from, to time.Time) (map[string]string, error)
}
