package models

import (
	"github.com/sommertheater/portal/internal/domain/holidays"
)

// HolidayModel is the GORM database model for synced holidays
type HolidayModel struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Year   int    `gorm:"not null;index:idx_holiday_year_region"`
	Region string `gorm:"not null;index:idx_holiday_year_region;type:varchar(20)"`
	Date   string `gorm:"not null;index;type:varchar(10)"`
	Name   string `gorm:"not null;type:varchar(200)"`
	Source string `gorm:"not null;type:varchar(10)"`
}

// TableName specifies the table name for GORM
func (HolidayModel) TableName() string {
	return "holidays"
}

// ToDomain converts GORM model to domain entity
func (m *HolidayModel) ToDomain() holidays.Holiday {
	return holidays.Holiday{
		Date:   parseDate(m.Date),
		Name:   m.Name,
		Source: holidays.Source(m.Source),
		Region: m.Region,
	}
}

// FromDomain converts domain entity to GORM model
func (m *HolidayModel) FromDomain(h holidays.Holiday) {
	m.Year = h.Date.Year()
	m.Region = h.Region
	m.Date = formatDate(h.Date)
	m.Name = h.Name
	m.Source = string(h.Source)
}
