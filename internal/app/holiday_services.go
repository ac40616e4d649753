package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

// holidayService implements the holidays.Service interface
type holidayService struct {
	repo     holidays.Repository
	fetchers []holidays.Fetcher
	region   string
	logger   logger.Logger
}

// NewHolidayService creates a new instance of holidays.Service. fetchers are
// tried in order until one returns holidays.
func NewHolidayService(repo holidays.Repository, fetchers []holidays.Fetcher, region string, logger logger.Logger) (holidays.Service, error) {
	if len(fetchers) == 0 {
		return nil, fmt.Errorf("at least one holiday source is required")
	}
	return &holidayService{
		repo:     repo,
		fetchers: fetchers,
		region:   region,
		logger:   logger,
	}, nil
}

func (s *holidayService) Sync(ctx context.Context, p *access.Principal, year int) (*holidays.SyncResult, error) {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return nil, err
	}
	if year < 1900 || year > 2200 {
		return nil, apperr.Validation("Ungültiges Jahr.", nil)
	}
	return s.sync(ctx, year)
}

func (s *holidayService) sync(ctx context.Context, year int) (*holidays.SyncResult, error) {
	for _, f := range s.fetchers {
		list, err := f.Fetch(ctx, year, s.region)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("Holiday source %s failed for %d: %v", f.Source(), year, err))
			continue
		}
		if len(list) == 0 {
			s.logger.Warn(fmt.Sprintf("Holiday source %s returned nothing for %d", f.Source(), year))
			continue
		}

		if err := s.repo.ReplaceYear(ctx, year, s.region, list); err != nil {
			return nil, err
		}
		s.logger.Info(fmt.Sprintf("Synced %d holidays for %d from %s", len(list), year, f.Source()))
		return &holidays.SyncResult{Year: year, Source: f.Source(), Holidays: list}, nil
	}
	return nil, fmt.Errorf("%w for %d", holidays.ErrNoHolidays, year)
}

func (s *holidayService) List(ctx context.Context, year int) ([]holidays.Holiday, error) {
	if year < 1900 || year > 2200 {
		return nil, apperr.Validation("Ungültiges Jahr.", nil)
	}
	list, err := s.repo.ListYear(ctx, year, s.region)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list, nil
	}
	res, err := s.sync(ctx, year)
	if err != nil {
		return nil, err
	}
	return s.repo.ListYear(ctx, res.Year, s.region)
}

// HolidaysBetween maps calendar days in [from, to] to holiday names. Dates
// are taken in the location of from and to.
func (s *holidayService) HolidaysBetween(ctx context.Context, from, to time.Time) (map[string]string, error) {
	out := make(map[string]string)
	if to.Before(from) {
		return out, nil
	}
	for year := from.Year(); year <= to.Year(); year++ {
		if _, err := s.List(ctx, year); err != nil {
			return nil, err
		}
	}

	list, err := s.repo.ListBetween(ctx, from, to, s.region)
	if err != nil {
		return nil, err
	}
	for _, h := range list {
		if existing, ok := out[h.DateKey()]; ok {
			out[h.DateKey()] = existing + ", " + h.Name
			continue
		}
		out[h.DateKey()] = h.Name
	}
	return out, nil
}
