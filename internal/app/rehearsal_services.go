package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

const reasonAlreadyScheduled = "Probe existiert bereits"

// templateService implements the rehearsals.TemplateService interface
type templateService struct {
	templates  rehearsals.TemplateRepository
	rehearsals rehearsals.RehearsalRepository
	holidays   rehearsals.HolidayCalendar
	clock      clock.Clock
	location   *time.Location
	logger     logger.Logger
}

// NewTemplateService creates a new instance of rehearsals.TemplateService.
// loc is the time zone template start times are interpreted in.
func NewTemplateService(
	templates rehearsals.TemplateRepository,
	rehearsalRepo rehearsals.RehearsalRepository,
	holidays rehearsals.HolidayCalendar,
	clk clock.Clock,
	loc *time.Location,
	logger logger.Logger,
) (rehearsals.TemplateService, error) {
	if loc == nil {
		return nil, fmt.Errorf("time zone is required")
	}
	return &templateService{
		templates:  templates,
		rehearsals: rehearsalRepo,
		holidays:   holidays,
		clock:      clk,
		location:   loc,
		logger:     logger,
	}, nil
}

func (s *templateService) Create(ctx context.Context, p *access.Principal, in *rehearsals.TemplateInput) (*rehearsals.Template, error) {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe die Vorlage.", err)
	}

	now := s.clock.Now().UTC()
	t := &rehearsals.Template{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	in.ApplyTo(t)
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return t, nil
}

func (s *templateService) GetByID(ctx context.Context, p *access.Principal, id string) (*rehearsals.Template, error) {
	if err := access.Require(p, access.PermRehearsalsRead); err != nil {
		return nil, err
	}
	return s.templates.GetByID(ctx, id)
}

func (s *templateService) List(ctx context.Context, p *access.Principal, activeOnly bool) ([]*rehearsals.Template, error) {
	if err := access.Require(p, access.PermRehearsalsRead); err != nil {
		return nil, err
	}
	return s.templates.List(ctx, activeOnly)
}

func (s *templateService) Update(ctx context.Context, p *access.Principal, id string, in *rehearsals.TemplateInput) (*rehearsals.Template, error) {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe die Vorlage.", err)
	}
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ApplyTo(t)
	t.UpdatedAt = s.clock.Now().UTC()
	if err := s.templates.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return t, nil
}

func (s *templateService) Delete(ctx context.Context, p *access.Principal, id string) error {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return err
	}
	return s.templates.Delete(ctx, id)
}

func (s *templateService) Instantiate(ctx context.Context, p *access.Principal, id string, date time.Time) (*rehearsals.Rehearsal, error) {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return nil, err
	}
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r, err := t.Instantiate(date, s.location)
	if err != nil {
		return nil, apperr.Validation("Die Vorlage hat eine ungültige Startzeit.", err)
	}
	s.stamp(r)
	if err := s.rehearsals.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create rehearsal: %w", err)
	}
	return r, nil
}

// GenerateSeries creates one rehearsal per matching weekday in [from, to].
// Holidays and days that already have a rehearsal from this template are
// skipped and reported.
func (s *templateService) GenerateSeries(ctx context.Context, p *access.Principal, id string, from, to time.Time) (*rehearsals.SeriesResult, error) {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return nil, err
	}
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dates, err := t.SeriesDates(from, to, s.location)
	if err != nil {
		if errors.Is(err, rehearsals.ErrInvalidRange) {
			return nil, apperr.Validation(fmt.Sprintf("Der Zeitraum muss gültig sein und darf höchstens %d Tage umfassen.", rehearsals.MaxSeriesDays), err)
		}
		return nil, err
	}
	result := &rehearsals.SeriesResult{Created: []*rehearsals.Rehearsal{}, Skipped: []rehearsals.SkippedDate{}}
	if len(dates) == 0 {
		return result, nil
	}

	first, last := dates[0], dates[len(dates)-1]
	holidays, err := s.holidays.HolidaysBetween(ctx, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	existing, err := s.rehearsals.List(ctx, &rehearsals.Query{From: first, To: last.AddDate(0, 0, 1), IncludeCancelled: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list rehearsals: %w", err)
	}
	taken := make(map[string]bool)
	for _, r := range existing {
		if r.TemplateID != nil && *r.TemplateID == t.ID {
			taken[r.StartsAt.In(s.location).Format(time.DateOnly)] = true
		}
	}

	for _, day := range dates {
		key := day.Format(time.DateOnly)
		if name, ok := holidays[key]; ok {
			result.Skipped = append(result.Skipped, rehearsals.SkippedDate{Date: day, Reason: name})
			continue
		}
		if taken[key] {
			result.Skipped = append(result.Skipped, rehearsals.SkippedDate{Date: day, Reason: reasonAlreadyScheduled})
			continue
		}
		r, err := t.Instantiate(day, s.location)
		if err != nil {
			return nil, apperr.Validation("Die Vorlage hat eine ungültige Startzeit.", err)
		}
		s.stamp(r)
		result.Created = append(result.Created, r)
	}

	if len(result.Created) > 0 {
		if err := s.rehearsals.CreateMany(ctx, result.Created); err != nil {
			return nil, fmt.Errorf("failed to create rehearsal series: %w", err)
		}
	}

	s.logger.Info(fmt.Sprintf("Generated %d rehearsals from template %s, skipped %d", len(result.Created), t.ID, len(result.Skipped)))
	return result, nil
}

func (s *templateService) stamp(r *rehearsals.Rehearsal) {
	now := s.clock.Now().UTC()
	r.ID = uuid.NewString()
	r.StartsAt = r.StartsAt.UTC()
	r.EndsAt = r.EndsAt.UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// PlanSettings holds what is printed in a rehearsal plan header.
type PlanSettings struct {
	Organization string
	Location     *time.Location
}

// rehearsalService implements the rehearsals.Service interface
type rehearsalService struct {
	rehearsals rehearsals.RehearsalRepository
	attendance rehearsals.AttendanceRepository
	shows      shows.ShowRepository
	renderer   rehearsals.PlanRenderer
	clock      clock.Clock
	settings   PlanSettings
	logger     logger.Logger
}

// NewRehearsalService creates a new instance of rehearsals.Service
func NewRehearsalService(
	rehearsalRepo rehearsals.RehearsalRepository,
	attendance rehearsals.AttendanceRepository,
	showRepo shows.ShowRepository,
	renderer rehearsals.PlanRenderer,
	clk clock.Clock,
	settings PlanSettings,
	logger logger.Logger,
) (rehearsals.Service, error) {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &rehearsalService{
		rehearsals: rehearsalRepo,
		attendance: attendance,
		shows:      showRepo,
		renderer:   renderer,
		clock:      clk,
		settings:   settings,
		logger:     logger,
	}, nil
}

func (s *rehearsalService) Create(ctx context.Context, p *access.Principal, in *rehearsals.RehearsalInput) (*rehearsals.Rehearsal, error) {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return nil, err
	}
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	r := &rehearsals.Rehearsal{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	in.ApplyTo(r)
	r.StartsAt, r.EndsAt = r.StartsAt.UTC(), r.EndsAt.UTC()
	if err := s.rehearsals.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create rehearsal: %w", err)
	}
	return r, nil
}

func (s *rehearsalService) checkInput(ctx context.Context, in *rehearsals.RehearsalInput) error {
	if err := in.Validate(); err != nil {
		return apperr.Validation("Bitte prüfe die Probe. Das Ende muss nach dem Beginn liegen.", err)
	}
	if in.ShowID != nil {
		if _, err := s.shows.GetByID(ctx, *in.ShowID); err != nil {
			if errors.Is(err, shows.ErrNotFound) {
				return apperr.Validation("Das Stück gibt es nicht.", err)
			}
			return err
		}
	}
	return nil
}

func (s *rehearsalService) GetByID(ctx context.Context, p *access.Principal, id string) (*rehearsals.Rehearsal, error) {
	if err := access.Require(p, access.PermRehearsalsRead); err != nil {
		return nil, err
	}
	return s.rehearsals.GetByID(ctx, id)
}

func (s *rehearsalService) List(ctx context.Context, p *access.Principal, query *rehearsals.Query) ([]*rehearsals.Rehearsal, error) {
	if err := access.Require(p, access.PermRehearsalsRead); err != nil {
		return nil, err
	}
	if query == nil {
		query = &rehearsals.Query{}
	}
	if !query.From.IsZero() && !query.To.IsZero() && query.To.Before(query.From) {
		return nil, apperr.Validation("Das Ende des Zeitraums liegt vor dem Beginn.", nil)
	}
	return s.rehearsals.List(ctx, query)
}

func (s *rehearsalService) Update(ctx context.Context, p *access.Principal, id string, in *rehearsals.RehearsalInput) (*rehearsals.Rehearsal, error) {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return nil, err
	}
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}
	r, err := s.rehearsals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ApplyTo(r)
	r.StartsAt, r.EndsAt = r.StartsAt.UTC(), r.EndsAt.UTC()
	r.UpdatedAt = s.clock.Now().UTC()
	if err := s.rehearsals.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update rehearsal: %w", err)
	}
	return r, nil
}

func (s *rehearsalService) Cancel(ctx context.Context, p *access.Principal, id string) (*rehearsals.Rehearsal, error) {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return nil, err
	}
	r, err := s.rehearsals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == rehearsals.StatusCancelled {
		return r, nil
	}
	r.Status = rehearsals.StatusCancelled
	r.UpdatedAt = s.clock.Now().UTC()
	if err := s.rehearsals.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to cancel rehearsal: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Cancelled rehearsal %s", id))
	return r, nil
}

func (s *rehearsalService) Delete(ctx context.Context, p *access.Principal, id string) error {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return err
	}
	return s.rehearsals.Delete(ctx, id)
}

func (s *rehearsalService) Respond(ctx context.Context, p *access.Principal, id string, response rehearsals.Response, note string) (*rehearsals.Attendance, error) {
	if err := access.Require(p, access.PermRehearsalsRead); err != nil {
		return nil, err
	}
	r, err := s.rehearsals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == rehearsals.StatusCancelled {
		return nil, apperr.Conflict("REHEARSAL_CANCELLED", "Diese Probe wurde abgesagt.")
	}

	a := &rehearsals.Attendance{
		RehearsalID: id,
		UserID:      p.UserID,
		Response:    response,
		Note:        note,
		UpdatedAt:   s.clock.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, apperr.Validation("Bitte antworte mit ja, nein oder vielleicht.", err)
	}
	if err := s.attendance.Upsert(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}
	return a, nil
}

func (s *rehearsalService) Attendance(ctx context.Context, p *access.Principal, id string) (*rehearsals.AttendanceOverview, error) {
	if err := access.Require(p, access.PermRehearsalsManage); err != nil {
		return nil, err
	}
	r, err := s.rehearsals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	responses, err := s.attendance.ListByRehearsal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return rehearsals.NewAttendanceOverview(r, responses), nil
}

func (s *rehearsalService) OwnResponses(ctx context.Context, p *access.Principal, query *rehearsals.Query) ([]*rehearsals.Attendance, error) {
	list, err := s.List(ctx, p, query)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*rehearsals.Attendance{}, nil
	}
	ids := make([]string, len(list))
	for i, r := range list {
		ids[i] = r.ID
	}
	return s.attendance.ListByUser(ctx, p.UserID, ids)
}

func (s *rehearsalService) PlanPDF(ctx context.Context, p *access.Principal, query *rehearsals.Query) ([]byte, error) {
	list, err := s.List(ctx, p, query)
	if err != nil {
		return nil, err
	}

	title := "Probenplan"
	if query != nil && query.ShowID != "" {
		show, err := s.shows.GetByID(ctx, query.ShowID)
		if err != nil {
			return nil, err
		}
		title = fmt.Sprintf("Probenplan %s", show.Title)
	}

	return s.renderer.RenderPlan(&rehearsals.Plan{
		Organization: s.settings.Organization,
		Title:        title,
		Rehearsals:   list,
		TimeZone:     s.settings.Location,
	})
}
