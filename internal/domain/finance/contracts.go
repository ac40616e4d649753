package finance

import (
	"context"
	"io"

	"github.com/sommertheater/portal/internal/domain/access"
)

type BudgetRepository interface {
	Create(ctx context.Context, b *Budget) error
	GetByID(ctx context.Context, id string) (*Budget, error)
	// List returns the budgets of showID (all when empty) within scopes.
	List(ctx context.Context, showID string, scopes []access.VisibilityScope) ([]*Budget, error)
	Update(ctx context.Context, b *Budget) error
	Delete(ctx context.Context, id string) error
}

type EntryRepository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, query *EntryQuery) ([]*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id string) error
}

type Service interface {
	CreateBudget(ctx context.Context, p *access.Principal, in *BudgetInput) (*Budget, error)
	ListBudgets(ctx context.Context, p *access.Principal, showID string) ([]*Budget, error)
	UpdateBudget(ctx context.Context, p *access.Principal, id string, in *BudgetInput) (*Budget, error)
	DeleteBudget(ctx context.Context, p *access.Principal, id string) error

	CreateEntry(ctx context.Context, p *access.Principal, in *EntryInput) (*Entry, error)
	GetEntry(ctx context.Context, p *access.Principal, id string) (*Entry, error)
	ListEntries(ctx context.Context, p *access.Principal, query *EntryQuery) ([]*Entry, error)
	UpdateEntry(ctx context.Context, p *access.Principal, id string, in *EntryInput) (*Entry, error)
	DeleteEntry(ctx context.Context, p *access.Principal, id string) error
	Approve(ctx context.Context, p *access.Principal, id string) (*Entry, error)
	Reject(ctx context.Context, p *access.Principal, id string, reason string) (*Entry, error)

	Summary(ctx context.Context, p *access.Principal, showID string) (*Summary, error)
	ExportCSV(ctx context.Context, p *access.Principal, query *EntryQuery, w io.Writer) error
}
