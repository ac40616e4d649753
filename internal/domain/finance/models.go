// Package finance tracks budgets and bookings with approval and visibility
// scopes.
package finance

import (
	"errors"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/pkg/validators"
)

var (
	ErrEntryNotFound  = errors.New("finance entry not found")
	ErrBudgetNotFound = errors.New("finance budget not found")

	// ErrBudgetExists is returned when a show already has a budget for the category.
	ErrBudgetExists = errors.New("budget category already exists")
)

// UnbudgetedCategory collects entries that reference no budget.
const UnbudgetedCategory = "Ohne Budget"

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Budget is a planned amount per category, optionally per show.
type Budget struct {
	ID           string                 `validate:"required,uuid4"`
	ShowID       *string                `validate:"omitempty,uuid4"`
	Category     string                 `validate:"required,notblank,max=100"`
	PlannedCents int64                  `validate:"min=0"`
	Scope        access.VisibilityScope `validate:"required,oneof=finance board"`
	Notes        string                 `validate:"omitempty,max=2000"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate for validating Budget struct
func (b *Budget) Validate() error {
	return validators.Struct(b)
}

// BudgetInput carries the editable fields of a budget.
type BudgetInput struct {
	ShowID       *string                `validate:"omitempty,uuid4"`
	Category     string                 `validate:"required,notblank,max=100"`
	PlannedCents int64                  `validate:"min=0"`
	Scope        access.VisibilityScope `validate:"omitempty,oneof=finance board"`
	Notes        string                 `validate:"omitempty,max=2000"`
}

// Validate for validating BudgetInput struct
func (in *BudgetInput) Validate() error {
	return validators.Struct(in)
}

// Entry is a single income or expense booking.
type Entry struct {
	ID              string                 `validate:"required,uuid4"`
	ShowID          *string                `validate:"omitempty,uuid4"`
	BudgetID        *string                `validate:"omitempty,uuid4"`
	Kind            Kind                   `validate:"required,oneof=income expense"`
	AmountCents     int64                  `validate:"gt=0"`
	Description     string                 `validate:"required,notblank,max=500"`
	BookedOn        time.Time              `validate:"required"`
	Scope           access.VisibilityScope `validate:"required,oneof=finance board"`
	Status          Status                 `validate:"required,oneof=pending approved rejected"`
	CreatedBy       string                 `validate:"required,uuid4"`
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason string `validate:"omitempty,max=1000"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate for validating Entry struct
func (e *Entry) Validate() error {
	return validators.Struct(e)
}

// Editable reports whether the entry may still be changed or deleted.
func (e *Entry) Editable() bool {
	return e.Status == StatusPending
}

// EntryInput carries the editable fields of an entry.
type EntryInput struct {
	ShowID      *string                `validate:"omitempty,uuid4"`
	BudgetID    *string                `validate:"omitempty,uuid4"`
	Kind        Kind                   `validate:"required,oneof=income expense"`
	AmountCents int64                  `validate:"gt=0"`
	Description string                 `validate:"required,notblank,max=500"`
	BookedOn    time.Time              `validate:"required"`
	Scope       access.VisibilityScope `validate:"omitempty,oneof=finance board"`
}

// Validate for validating EntryInput struct
func (in *EntryInput) Validate() error {
	return validators.Struct(in)
}

// EntryQuery filters entries. Scopes is always set by the service from the
// caller's allowed scopes.
type EntryQuery struct {
	ShowID string
	Kind   Kind   `validate:"omitempty,oneof=income expense"`
	Status Status `validate:"omitempty,oneof=pending approved rejected"`
	From   time.Time
	To     time.Time
	Scopes []access.VisibilityScope
	Limit  int `validate:"omitempty,min=1,max=1000"`
	Offset int `validate:"omitempty,min=0"`
}

// Validate for validating EntryQuery struct
func (q *EntryQuery) Validate() error {
	return validators.Struct(q)
}

// CategorySummary compares planned and actual amounts of one category.
type CategorySummary struct {
	Category      string
	PlannedCents  int64
	IncomeCents   int64
	ExpenseCents  int64
	VarianceCents int64
}

// Summary is the budget-versus-actual view of a show (or of all bookings).
type Summary struct {
	ShowID            string
	Categories        []CategorySummary
	TotalPlannedCents int64
	TotalIncomeCents  int64
	TotalExpenseCents int64
	BalanceCents      int64
	PendingCount      int
}
