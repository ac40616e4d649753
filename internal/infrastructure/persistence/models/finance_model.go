package models

import (
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/finance"
)

// FinanceBudgetModel is the GORM database model for budgets.
// ShowKey mirrors ShowID with "" for show-less budgets so the unique index
// also covers them.
type FinanceBudgetModel struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)"`
	ShowID       *string `gorm:"type:varchar(36)"`
	ShowKey      string  `gorm:"not null;uniqueIndex:idx_budget_show_category;type:varchar(36)"`
	Category     string  `gorm:"not null;uniqueIndex:idx_budget_show_category;type:varchar(100)"`
	PlannedCents int64   `gorm:"not null"`
	Scope        string  `gorm:"not null;index;type:varchar(20)"`
	Notes        string  `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (FinanceBudgetModel) TableName() string {
	return "finance_budgets"
}

// ToDomain converts GORM model to domain entity
func (m *FinanceBudgetModel) ToDomain() *finance.Budget {
	return &finance.Budget{
		ID:           m.ID,
		ShowID:       m.ShowID,
		Category:     m.Category,
		PlannedCents: m.PlannedCents,
		Scope:        access.VisibilityScope(m.Scope),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *FinanceBudgetModel) FromDomain(b *finance.Budget) {
	m.ID = b.ID
	m.ShowID = b.ShowID
	m.ShowKey = ""
	if b.ShowID != nil {
		m.ShowKey = *b.ShowID
	}
	m.Category = b.Category
	m.PlannedCents = b.PlannedCents
	m.Scope = string(b.Scope)
	m.Notes = b.Notes
	m.CreatedAt = b.CreatedAt
	m.UpdatedAt = b.UpdatedAt
}

// FinanceEntryModel is the GORM database model for bookings
type FinanceEntryModel struct {
	ID              string  `gorm:"primaryKey;type:varchar(36)"`
	ShowID          *string `gorm:"index;type:varchar(36)"`
	BudgetID        *string `gorm:"index;type:varchar(36)"`
	Kind            string  `gorm:"not null;type:varchar(10)"`
	AmountCents     int64   `gorm:"not null"`
	Description     string  `gorm:"not null;type:varchar(500)"`
	BookedOn        string  `gorm:"not null;index;type:varchar(10)"`
	Scope           string  `gorm:"not null;index;type:varchar(20)"`
	Status          string  `gorm:"not null;index;type:varchar(20)"`
	CreatedBy       string  `gorm:"not null;type:varchar(36)"`
	ApprovedBy      *string `gorm:"type:varchar(36)"`
	ApprovedAt      *time.Time
	RejectionReason string `gorm:"type:varchar(1000)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (FinanceEntryModel) TableName() string {
	return "finance_entries"
}

// ToDomain converts GORM model to domain entity
func (m *FinanceEntryModel) ToDomain() *finance.Entry {
	return &finance.Entry{
		ID:              m.ID,
		ShowID:          m.ShowID,
		BudgetID:        m.BudgetID,
		Kind:            finance.Kind(m.Kind),
		AmountCents:     m.AmountCents,
		Description:     m.Description,
		BookedOn:        parseDate(m.BookedOn),
		Scope:           access.VisibilityScope(m.Scope),
		Status:          finance.Status(m.Status),
		CreatedBy:       m.CreatedBy,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *FinanceEntryModel) FromDomain(e *finance.Entry) {
	m.ID = e.ID
	m.ShowID = e.ShowID
	m.BudgetID = e.BudgetID
	m.Kind = string(e.Kind)
	m.AmountCents = e.AmountCents
	m.Description = e.Description
	m.BookedOn = formatDate(e.BookedOn)
	m.Scope = string(e.Scope)
	m.Status = string(e.Status)
	m.CreatedBy = e.CreatedBy
	m.ApprovedBy = e.ApprovedBy
	m.ApprovedAt = e.ApprovedAt
	m.RejectionReason = e.RejectionReason
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}
