package models

import (
	"time"

	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/measurements"
)

// PhotoConsentModel is the GORM database model for photo consents
type PhotoConsentModel struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)"`
	UserID       string  `gorm:"not null;uniqueIndex;type:varchar(36)"`
	Consents     bool    `gorm:"not null"`
	Status       string  `gorm:"not null;index;type:varchar(20)"`
	GuardianName string  `gorm:"type:varchar(200)"`
	Notes        string  `gorm:"type:text"`
	ReviewNote   string  `gorm:"type:text"`
	ReviewedBy   *string `gorm:"type:varchar(36)"`
	ReviewedAt   *time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PhotoConsentModel) TableName() string {
	return "photo_consents"
}

// ToDomain converts GORM model to domain entity
func (m *PhotoConsentModel) ToDomain() *consent.PhotoConsent {
	return &consent.PhotoConsent{
		ID:           m.ID,
		UserID:       m.UserID,
		Consents:     m.Consents,
		Status:       consent.Status(m.Status),
		GuardianName: m.GuardianName,
		Notes:        m.Notes,
		ReviewNote:   m.ReviewNote,
		ReviewedBy:   m.ReviewedBy,
		ReviewedAt:   m.ReviewedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PhotoConsentModel) FromDomain(c *consent.PhotoConsent) {
	m.ID = c.ID
	m.UserID = c.UserID
	m.Consents = c.Consents
	m.Status = string(c.Status)
	m.GuardianName = c.GuardianName
	m.Notes = c.Notes
	m.ReviewNote = c.ReviewNote
	m.ReviewedBy = c.ReviewedBy
	m.ReviewedAt = c.ReviewedAt
	m.UpdatedAt = c.UpdatedAt
}

// MeasurementModel is the GORM database model for costume measurements
type MeasurementModel struct {
	ID         string  `gorm:"primaryKey;type:varchar(36)"`
	UserID     string  `gorm:"not null;uniqueIndex:idx_measurement_user_kind;type:varchar(36)"`
	Kind       string  `gorm:"not null;uniqueIndex:idx_measurement_user_kind;type:varchar(20)"`
	Value      float64 `gorm:"not null;type:decimal(7,2)"`
	Unit       string  `gorm:"not null;type:varchar(10)"`
	Notes      string  `gorm:"type:varchar(500)"`
	MeasuredBy string  `gorm:"type:varchar(36)"`
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (MeasurementModel) TableName() string {
	return "measurements"
}

// ToDomain converts GORM model to domain entity
func (m *MeasurementModel) ToDomain() *measurements.Measurement {
	return &measurements.Measurement{
		ID:         m.ID,
		UserID:     m.UserID,
		Kind:       measurements.Kind(m.Kind),
		Value:      m.Value,
		Unit:       measurements.Unit(m.Unit),
		Notes:      m.Notes,
		MeasuredBy: m.MeasuredBy,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MeasurementModel) FromDomain(x *measurements.Measurement) {
	m.ID = x.ID
	m.UserID = x.UserID
	m.Kind = string(x.Kind)
	m.Value = x.Value
	m.Unit = string(x.Unit)
	m.Notes = x.Notes
	m.MeasuredBy = x.MeasuredBy
	m.UpdatedAt = x.UpdatedAt
}

// DietaryRestrictionModel is the GORM database model for dietary restrictions
type DietaryRestrictionModel struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"not null;index;type:varchar(36)"`
	Label     string `gorm:"not null;type:varchar(100)"`
	Severity  string `gorm:"not null;type:varchar(20)"`
	Notes     string `gorm:"type:varchar(1000)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (DietaryRestrictionModel) TableName() string {
	return "dietary_restrictions"
}

// ToDomain converts GORM model to domain entity
func (m *DietaryRestrictionModel) ToDomain() *dietary.Restriction {
	return &dietary.Restriction{
		ID:        m.ID,
		UserID:    m.UserID,
		Label:     m.Label,
		Severity:  dietary.Severity(m.Severity),
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DietaryRestrictionModel) FromDomain(r *dietary.Restriction) {
	m.ID = r.ID
	m.UserID = r.UserID
	m.Label = r.Label
	m.Severity = string(r.Severity)
	m.Notes = r.Notes
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}
