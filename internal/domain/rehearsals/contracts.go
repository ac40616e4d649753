package rehearsals

import (
	"context"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
)

type TemplateRepository interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	List(ctx context.Context, activeOnly bool) ([]*Template, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id string) error
}

type RehearsalRepository interface {
	Create(ctx context.Context, r *Rehearsal) error
	// CreateMany inserts all rehearsals or none.
	CreateMany(ctx context.Context, rs []*Rehearsal) error
	GetByID(ctx context.Context, id string) (*Rehearsal, error)
	List(ctx context.Context, query *Query) ([]*Rehearsal, error)
	Update(ctx context.Context, r *Rehearsal) error
	Delete(ctx context.Context, id string) error
}

type AttendanceRepository interface {
	// Upsert is keyed on (rehearsal, user).
	Upsert(ctx context.Context, a *Attendance) error
	ListByRehearsal(ctx context.Context, rehearsalID string) ([]*Attendance, error)
	ListByUser(ctx context.Context, userID string, rehearsalIDs []string) ([]*Attendance, error)
}

// HolidayCalendar reports holidays by calendar day ("2006-01-02" → name).
type HolidayCalendar interface {
	HolidaysBetween(ctx context.Context, from, to time.Time) (map[string]string, error)
}

// PlanRenderer renders a rehearsal plan as PDF.
type PlanRenderer interface {
	RenderPlan(plan *Plan) ([]byte, error)
}

type TemplateService interface {
	Create(ctx context.Context, p *access.Principal, in *TemplateInput) (*Template, error)
	GetByID(ctx context.Context, p *access.Principal, id string) (*Template, error)
	List(ctx context.Context, p *access.Principal, activeOnly bool) ([]*Template, error)
	Update(ctx context.Context, p *access.Principal, id string, in *TemplateInput) (*Template, error)
	Delete(ctx context.Context, p *access.Principal, id string) error
	Instantiate(ctx context.Context, p *access.Principal, id string, date time.Time) (*Rehearsal, error)
	GenerateSeries(ctx context.Context, p *access.Principal, id string, from, to time.Time) (*SeriesResult, error)
}

type Service interface {
	Create(ctx context.Context, p *access.Principal, in *RehearsalInput) (*Rehearsal, error)
	GetByID(ctx context.Context, p *access.Principal, id string) (*Rehearsal, error)
	List(ctx context.Context, p *access.Principal, query *Query) ([]*Rehearsal, error)
	Update(ctx context.Context, p *access.Principal, id string, in *RehearsalInput) (*Rehearsal, error)
	Cancel(ctx context.Context, p *access.Principal, id string) (*Rehearsal, error)
	Delete(ctx context.Context, p *access.Principal, id string) error
	Respond(ctx context.Context, p *access.Principal, id string, response Response, note string) (*Attendance, error)
	Attendance(ctx context.Context, p *access.Principal, id string) (*AttendanceOverview, error)
	// OwnResponses returns the caller's responses to the rehearsals matching query.
	OwnResponses(ctx context.Context, p *access.Principal, query *Query) ([]*Attendance, error)
	PlanPDF(ctx context.Context, p *access.Principal, query *Query) ([]byte, error)
}
