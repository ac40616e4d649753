package models

import (
	"time"

	"github.com/sommertheater/portal/internal/domain/rehearsals"
)

// RehearsalTemplateModel is the GORM database model for rehearsal templates
type RehearsalTemplateModel struct {
	ID              string  `gorm:"primaryKey;type:varchar(36)"`
	ShowID          *string `gorm:"index;type:varchar(36)"`
	Name            string  `gorm:"not null;type:varchar(200)"`
	Weekday         int     `gorm:"not null"`
	StartTime       string  `gorm:"not null;type:varchar(5)"`
	DurationMinutes int     `gorm:"not null"`
	Location        string  `gorm:"type:varchar(200)"`
	Notes           string  `gorm:"type:text"`
	Active          bool    `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (RehearsalTemplateModel) TableName() string {
	return "rehearsal_templates"
}

// ToDomain converts GORM model to domain entity
func (m *RehearsalTemplateModel) ToDomain() *rehearsals.Template {
	return &rehearsals.Template{
		ID:              m.ID,
		ShowID:          m.ShowID,
		Name:            m.Name,
		Weekday:         time.Weekday(m.Weekday),
		StartTime:       m.StartTime,
		DurationMinutes: m.DurationMinutes,
		Location:        m.Location,
		Notes:           m.Notes,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RehearsalTemplateModel) FromDomain(t *rehearsals.Template) {
	m.ID = t.ID
	m.ShowID = t.ShowID
	m.Name = t.Name
	m.Weekday = int(t.Weekday)
	m.StartTime = t.StartTime
	m.DurationMinutes = t.DurationMinutes
	m.Location = t.Location
	m.Notes = t.Notes
	m.Active = t.Active
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// RehearsalModel is the GORM database model for rehearsals.
// Times are stored in UTC.
type RehearsalModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	ShowID     *string   `gorm:"index;type:varchar(36)"`
	Title      string    `gorm:"not null;type:varchar(200)"`
	StartsAt   time.Time `gorm:"not null;index"`
	EndsAt     time.Time `gorm:"not null"`
	Location   string    `gorm:"type:varchar(200)"`
	Notes      string    `gorm:"type:text"`
	Status     string    `gorm:"not null;type:varchar(20)"`
	TemplateID *string   `gorm:"index;type:varchar(36)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (RehearsalModel) TableName() string {
	return "rehearsals"
}

// ToDomain converts GORM model to domain entity
func (m *RehearsalModel) ToDomain() *rehearsals.Rehearsal {
	return &rehearsals.Rehearsal{
		ID:         m.ID,
		ShowID:     m.ShowID,
		Title:      m.Title,
		StartsAt:   m.StartsAt.UTC(),
		EndsAt:     m.EndsAt.UTC(),
		Location:   m.Location,
		Notes:      m.Notes,
		Status:     rehearsals.Status(m.Status),
		TemplateID: m.TemplateID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RehearsalModel) FromDomain(r *rehearsals.Rehearsal) {
	m.ID = r.ID
	m.ShowID = r.ShowID
	m.Title = r.Title
	m.StartsAt = r.StartsAt.UTC()
	m.EndsAt = r.EndsAt.UTC()
	m.Location = r.Location
	m.Notes = r.Notes
	m.Status = string(r.Status)
	m.TemplateID = r.TemplateID
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}

// AttendanceModel is the GORM database model for attendance responses
type AttendanceModel struct {
	RehearsalID string `gorm:"primaryKey;type:varchar(36)"`
	UserID      string `gorm:"primaryKey;index;type:varchar(36)"`
	Response    string `gorm:"not null;type:varchar(10)"`
	Note        string `gorm:"type:varchar(500)"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (AttendanceModel) TableName() string {
	return "rehearsal_attendances"
}

// ToDomain converts GORM model to domain entity
func (m *AttendanceModel) ToDomain() *rehearsals.Attendance {
	return &rehearsals.Attendance{
		RehearsalID: m.RehearsalID,
		UserID:      m.UserID,
		Response:    rehearsals.Response(m.Response),
		Note:        m.Note,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AttendanceModel) FromDomain(a *rehearsals.Attendance) {
	m.RehearsalID = a.RehearsalID
	m.UserID = a.UserID
	m.Response = string(a.Response)
	m.Note = a.Note
	m.UpdatedAt = a.UpdatedAt
}
