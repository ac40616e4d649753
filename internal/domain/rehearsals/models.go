// Package rehearsals schedules rehearsals, reusable rehearsal templates and
// attendance responses.
package rehearsals

import (
	"errors"
	"fmt"
	"time"

	"github.com/sommertheater/portal/internal/pkg/validators"
)

var (
	ErrNotFound         = errors.New("rehearsal not found")
	ErrTemplateNotFound = errors.New("rehearsal template not found")
	ErrInvalidRange     = errors.New("invalid date range")
)

// MaxSeriesDays bounds a generated series.
const MaxSeriesDays = 366

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

type Response string

const (
	ResponseYes   Response = "yes"
	ResponseNo    Response = "no"
	ResponseMaybe Response = "maybe"
)

// Template is a recurring weekly slot rehearsals are created from.
type Template struct {
	ID              string       `validate:"required,uuid4"`
	ShowID          *string      `validate:"omitempty,uuid4"`
	Name            string       `validate:"required,notblank,max=200"`
	Weekday         time.Weekday `validate:"min=0,max=6"`
	StartTime       string       `validate:"required,hhmm"`
	DurationMinutes int          `validate:"required,min=15,max=720"`
	Location        string       `validate:"omitempty,max=200"`
	Notes           string       `validate:"omitempty,max=2000"`
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate for validating Template struct
func (t *Template) Validate() error {
	return validators.Struct(t)
}

// StartOn returns the template's start time on the calendar day of date in loc.
func (t *Template) StartOn(date time.Time, loc *time.Location) (time.Time, error) {
	clock, err := time.Parse("15:04", t.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", t.StartTime, err)
	}
	y, m, d := date.In(loc).Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// Instantiate builds a scheduled rehearsal from the template on date.
// The returned rehearsal has no ID yet.
func (t *Template) Instantiate(date time.Time, loc *time.Location) (*Rehearsal, error) {
	start, err := t.StartOn(date, loc)
	if err != nil {
		return nil, err
	}
	templateID := t.ID
	return &Rehearsal{
		ShowID:     t.ShowID,
		Title:      t.Name,
		StartsAt:   start,
		EndsAt:     start.Add(time.Duration(t.DurationMinutes) * time.Minute),
		Location:   t.Location,
		Notes:      t.Notes,
		Status:     StatusScheduled,
		TemplateID: &templateID,
	}, nil
}

// SeriesDates lists every day in [from, to] that falls on the template's weekday.
func (t *Template) SeriesDates(from, to time.Time, loc *time.Location) ([]time.Time, error) {
	fy, fm, fd := from.In(loc).Date()
	ty, tm, td := to.In(loc).Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, loc)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	if end.Before(start) || end.Sub(start) > MaxSeriesDays*24*time.Hour {
		return nil, ErrInvalidRange
	}

	offset := (int(t.Weekday) - int(start.Weekday()) + 7) % 7
	var dates []time.Time
	for day := start.AddDate(0, 0, offset); !day.After(end); day = day.AddDate(0, 0, 7) {
		dates = append(dates, day)
	}
	return dates, nil
}

// TemplateInput carries the editable fields of a template.
type TemplateInput struct {
	ShowID          *string      `validate:"omitempty,uuid4"`
	Name            string       `validate:"required,notblank,max=200"`
	Weekday         time.Weekday `validate:"min=0,max=6"`
	StartTime       string       `validate:"required,hhmm"`
	DurationMinutes int          `validate:"required,min=15,max=720"`
	Location        string       `validate:"omitempty,max=200"`
	Notes           string       `validate:"omitempty,max=2000"`
	Active          bool
}

// Validate for validating TemplateInput struct
func (in *TemplateInput) Validate() error {
	return validators.Struct(in)
}

func (in *TemplateInput) ApplyTo(t *Template) {
	t.ShowID = in.ShowID
	t.Name = in.Name
	t.Weekday = in.Weekday
	t.StartTime = in.StartTime
	t.DurationMinutes = in.DurationMinutes
	t.Location = in.Location
	t.Notes = in.Notes
	t.Active = in.Active
}

// Rehearsal is a single scheduled rehearsal.
type Rehearsal struct {
	ID         string    `validate:"required,uuid4"`
	ShowID     *string   `validate:"omitempty,uuid4"`
	Title      string    `validate:"required,notblank,max=200"`
	StartsAt   time.Time `validate:"required"`
	EndsAt     time.Time `validate:"required,gtfield=StartsAt"`
	Location   string    `validate:"omitempty,max=200"`
	Notes      string    `validate:"omitempty,max=2000"`
	Status     Status    `validate:"required,oneof=scheduled cancelled"`
	TemplateID *string   `validate:"omitempty,uuid4"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate for validating Rehearsal struct
func (r *Rehearsal) Validate() error {
	return validators.Struct(r)
}

// RehearsalInput carries the editable fields of a rehearsal.
type RehearsalInput struct {
	ShowID   *string   `validate:"omitempty,uuid4"`
	Title    string    `validate:"required,notblank,max=200"`
	StartsAt time.Time `validate:"required"`
	EndsAt   time.Time `validate:"required,gtfield=StartsAt"`
	Location string    `validate:"omitempty,max=200"`
	Notes    string    `validate:"omitempty,max=2000"`
	Status   Status    `validate:"omitempty,oneof=scheduled cancelled"`
}

// Validate for validating RehearsalInput struct
func (in *RehearsalInput) Validate() error {
	return validators.Struct(in)
}

func (in *RehearsalInput) ApplyTo(r *Rehearsal) {
	r.ShowID = in.ShowID
	r.Title = in.Title
	r.StartsAt = in.StartsAt
	r.EndsAt = in.EndsAt
	r.Location = in.Location
	r.Notes = in.Notes
	r.Status = in.Status
	if r.Status == "" {
		r.Status = StatusScheduled
	}
}

// Query filters rehearsals. Zero times leave the range open.
type Query struct {
	From             time.Time
	To               time.Time
	ShowID           string
	IncludeCancelled bool
}

// SkippedDate is a series date left out because of a holiday.
type SkippedDate struct {
	Date   time.Time
	Reason string
}

// SeriesResult reports what a series generation produced.
type SeriesResult struct {
	Created []*Rehearsal
	Skipped []SkippedDate
}

// Attendance is a member's response to a rehearsal.
type Attendance struct {
	RehearsalID string   `validate:"required,uuid4"`
	UserID      string   `validate:"required,uuid4"`
	Response    Response `validate:"required,oneof=yes no maybe"`
	Note        string   `validate:"omitempty,max=500"`
	UpdatedAt   time.Time
}

// Validate for validating Attendance struct
func (a *Attendance) Validate() error {
	return validators.Struct(a)
}

// AttendanceOverview summarizes the responses to one rehearsal.
type AttendanceOverview struct {
	Rehearsal *Rehearsal
	Yes       int
	No        int
	Maybe     int
	Responses []*Attendance
}

// NewAttendanceOverview counts the responses.
func NewAttendanceOverview(r *Rehearsal, responses []*Attendance) *AttendanceOverview {
	o := &AttendanceOverview{Rehearsal: r, Responses: responses}
	for _, a := range responses {
		switch a.Response {
		case ResponseYes:
			o.Yes++
		case ResponseNo:
			o.No++
		case ResponseMaybe:
			o.Maybe++
		}
	}
	return o
}

// Plan is the data printed on a rehearsal plan.
type Plan struct {
	Organization string
	Title        string
	Rehearsals   []*Rehearsal
	TimeZone     *time.Location
}
