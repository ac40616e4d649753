package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

var (
	errScopeNotAllowed = apperr.Forbidden("Diese Sichtbarkeit darfst du nicht verwenden.")
	errEntryLocked     = apperr.Conflict("ENTRY_LOCKED", "Nur offene Buchungen können geändert werden.")
)

// financeService implements the finance.Service interface
type financeService struct {
	budgets   finance.BudgetRepository
	entries   finance.EntryRepository
	clock     clock.Clock
	threshold int64
	logger    logger.Logger
}

// NewFinanceService creates a new instance of finance.Service. Entries up to
// approvalThresholdCents are approved on creation; zero disables that.
func NewFinanceService(
	budgets finance.BudgetRepository,
	entries finance.EntryRepository,
	clk clock.Clock,
	approvalThresholdCents int64,
	logger logger.Logger,
) (finance.Service, error) {
	if approvalThresholdCents < 0 {
		return nil, fmt.Errorf("approval threshold must not be negative")
	}
	return &financeService{
		budgets:   budgets,
		entries:   entries,
		clock:     clk,
		threshold: approvalThresholdCents,
		logger:    logger,
	}, nil
}

// resolveScope checks the requested scope against the caller's allowed
// scopes; an empty request picks the first allowed one.
func resolveScope(p *access.Principal, requested access.VisibilityScope) (access.VisibilityScope, error) {
	allowed := access.ResolveAllowedVisibilityScopes(p)
	if len(allowed) == 0 {
		return "", errScopeNotAllowed
	}
	if requested == "" {
		return allowed[0], nil
	}
	if !access.IsScopeAllowed(p, requested) {
		return "", errScopeNotAllowed
	}
	return requested, nil
}

func (s *financeService) CreateBudget(ctx context.Context, p *access.Principal, in *finance.BudgetInput) (*finance.Budget, error) {
	if err := access.Require(p, access.PermFinanceWrite); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe das Budget.", err)
	}
	scope, err := resolveScope(p, in.Scope)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	b := &finance.Budget{
		ID:           uuid.NewString(),
		ShowID:       in.ShowID,
		Category:     strings.TrimSpace(in.Category),
		PlannedCents: in.PlannedCents,
		Scope:        scope,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.budgets.Create(ctx, b); err != nil {
		return nil, budgetError(err)
	}
	s.logger.Info(fmt.Sprintf("Created finance budget with id %s", b.ID))
	return b, nil
}

func budgetError(err error) error {
	if errors.Is(err, finance.ErrBudgetExists) {
		return apperr.Conflict("BUDGET_EXISTS", "Für diese Kategorie gibt es schon ein Budget.").Wrap(err)
	}
	return err
}

func (s *financeService) ListBudgets(ctx context.Context, p *access.Principal, showID string) ([]*finance.Budget, error) {
	if err := access.Require(p, access.PermFinanceRead); err != nil {
		return nil, err
	}
	return s.budgets.List(ctx, showID, access.ResolveAllowedVisibilityScopes(p))
}

// visibleBudget loads a budget and hides it when its scope is not allowed.
func (s *financeService) visibleBudget(ctx context.Context, p *access.Principal, id string) (*finance.Budget, error) {
	b, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.IsScopeAllowed(p, b.Scope) {
		return nil, finance.ErrBudgetNotFound
	}
	return b, nil
}

func (s *financeService) UpdateBudget(ctx context.Context, p *access.Principal, id string, in *finance.BudgetInput) (*finance.Budget, error) {
	if err := access.Require(p, access.PermFinanceWrite); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe das Budget.", err)
	}
	b, err := s.visibleBudget(ctx, p, id)
	if err != nil {
		return nil, err
	}
	scope := b.Scope
	if in.Scope != "" {
		if scope, err = resolveScope(p, in.Scope); err != nil {
			return nil, err
		}
	}

	b.ShowID = in.ShowID
	b.Category = strings.TrimSpace(in.Category)
	b.PlannedCents = in.PlannedCents
	b.Scope = scope
	b.Notes = in.Notes
	b.UpdatedAt = s.clock.Now().UTC()
	if err := s.budgets.Update(ctx, b); err != nil {
		return nil, budgetError(err)
	}
	return b, nil
}

func (s *financeService) DeleteBudget(ctx context.Context, p *access.Principal, id string) error {
	if err := access.Require(p, access.PermFinanceWrite); err != nil {
		return err
	}
	if _, err := s.visibleBudget(ctx, p, id); err != nil {
		return err
	}
	return s.budgets.Delete(ctx, id)
}

// checkBudgetLink makes sure a referenced budget is visible and belongs to
// the same show.
func (s *financeService) checkBudgetLink(ctx context.Context, p *access.Principal, in *finance.EntryInput) error {
	if in.BudgetID == nil {
		return nil
	}
	b, err := s.visibleBudget(ctx, p, *in.BudgetID)
	if err != nil {
		if errors.Is(err, finance.ErrBudgetNotFound) {
			return apperr.Validation("Das Budget gibt es nicht.", err)
		}
		return err
	}
	if b.ShowID != nil && (in.ShowID == nil || *in.ShowID != *b.ShowID) {
		return apperr.Validation("Das Budget gehört zu einem anderen Stück.", nil)
	}
	return nil
}

func (s *financeService) CreateEntry(ctx context.Context, p *access.Principal, in *finance.EntryInput) (*finance.Entry, error) {
	if err := access.Require(p, access.PermFinanceWrite); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe die Buchung. Der Betrag muss größer als null sein.", err)
	}
	scope, err := resolveScope(p, in.Scope)
	if err != nil {
		return nil, err
	}
	if err := s.checkBudgetLink(ctx, p, in); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	e := &finance.Entry{
		ID:          uuid.NewString(),
		ShowID:      in.ShowID,
		BudgetID:    in.BudgetID,
		Kind:        in.Kind,
		AmountCents: in.AmountCents,
		Description: strings.TrimSpace(in.Description),
		BookedOn:    in.BookedOn,
		Scope:       scope,
		Status:      finance.StatusPending,
		CreatedBy:   p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.threshold > 0 && e.AmountCents <= s.threshold {
		e.Status = finance.StatusApproved
		e.ApprovedAt = &now
	}

	if err := s.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create finance entry: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Created finance entry with id %s (%s)", e.ID, e.Status))
	return e, nil
}

// visibleEntry loads an entry and hides it when its scope is not allowed.
func (s *financeService) visibleEntry(ctx context.Context, p *access.Principal, id string) (*finance.Entry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.IsScopeAllowed(p, e.Scope) {
		return nil, finance.ErrEntryNotFound
	}
	return e, nil
}

func (s *financeService) GetEntry(ctx context.Context, p *access.Principal, id string) (*finance.Entry, error) {
	if err := access.Require(p, access.PermFinanceRead); err != nil {
		return nil, err
	}
	return s.visibleEntry(ctx, p, id)
}

func (s *financeService) ListEntries(ctx context.Context, p *access.Principal, query *finance.EntryQuery) ([]*finance.Entry, error) {
	if err := access.Require(p, access.PermFinanceRead); err != nil {
		return nil, err
	}
	q := finance.EntryQuery{}
	if query != nil {
		q = *query
	}
	q.Scopes = access.ResolveAllowedVisibilityScopes(p)
	if err := q.Validate(); err != nil {
		return nil, apperr.Validation("Ungültige Filter.", err)
	}
	return s.entries.List(ctx, &q)
}

func (s *financeService) UpdateEntry(ctx context.Context, p *access.Principal, id string, in *finance.EntryInput) (*finance.Entry, error) {
	if err := access.Require(p, access.PermFinanceWrite); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe die Buchung. Der Betrag muss größer als null sein.", err)
	}
	e, err := s.visibleEntry(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !e.Editable() {
		return nil, errEntryLocked
	}
	scope := e.Scope
	if in.Scope != "" {
		if scope, err = resolveScope(p, in.Scope); err != nil {
			return nil, err
		}
	}
	if err := s.checkBudgetLink(ctx, p, in); err != nil {
		return nil, err
	}

	e.ShowID = in.ShowID
	e.BudgetID = in.BudgetID
	e.Kind = in.Kind
	e.AmountCents = in.AmountCents
	e.Description = strings.TrimSpace(in.Description)
	e.BookedOn = in.BookedOn
	e.Scope = scope
	e.UpdatedAt = s.clock.Now().UTC()
	if err := s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update finance entry: %w", err)
	}
	return e, nil
}

func (s *financeService) DeleteEntry(ctx context.Context, p *access.Principal, id string) error {
	if err := access.Require(p, access.PermFinanceWrite); err != nil {
		return err
	}
	e, err := s.visibleEntry(ctx, p, id)
	if err != nil {
		return err
	}
	if !e.Editable() {
		return errEntryLocked
	}
	return s.entries.Delete(ctx, id)
}

func (s *financeService) Approve(ctx context.Context, p *access.Principal, id string) (*finance.Entry, error) {
	e, err := s.pendingForDecision(ctx, p, id)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	approver := p.UserID
	e.Status = finance.StatusApproved
	e.ApprovedBy = &approver
	e.ApprovedAt = &now
	e.RejectionReason = ""
	e.UpdatedAt = now
	if err := s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to approve finance entry: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Finance entry %s approved by %s", id, approver))
	return e, nil
}

func (s *financeService) Reject(ctx context.Context, p *access.Principal, id string, reason string) (*finance.Entry, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.Validation("Bitte gib einen Grund für die Ablehnung an.", nil)
	}
	e, err := s.pendingForDecision(ctx, p, id)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	approver := p.UserID
	e.Status = finance.StatusRejected
	e.ApprovedBy = &approver
	e.ApprovedAt = &now
	e.RejectionReason = reason
	e.UpdatedAt = now
	if err := s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to reject finance entry: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Finance entry %s rejected by %s", id, approver))
	return e, nil
}

func (s *financeService) pendingForDecision(ctx context.Context, p *access.Principal, id string) (*finance.Entry, error) {
	if err := access.Require(p, access.PermFinanceApprove); err != nil {
		return nil, err
	}
	e, err := s.visibleEntry(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if e.Status != finance.StatusPending {
		return nil, apperr.Conflict("ENTRY_DECIDED", "Über diese Buchung wurde bereits entschieden.")
	}
	if e.CreatedBy == p.UserID {
		return nil, apperr.Forbidden("Eigene Buchungen kann nur jemand anderes freigeben.")
	}
	return e, nil
}

func (s *financeService) Summary(ctx context.Context, p *access.Principal, showID string) (*finance.Summary, error) {
	if err := access.Require(p, access.PermFinanceRead); err != nil {
		return nil, err
	}
	scopes := access.ResolveAllowedVisibilityScopes(p)
	budgets, err := s.budgets.List(ctx, showID, scopes)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.List(ctx, &finance.EntryQuery{ShowID: showID, Scopes: scopes})
	if err != nil {
		return nil, err
	}
	return finance.Summarize(showID, budgets, entries), nil
}

var csvHeader = []string{
	"Datum", "Art", "Betrag", "Beschreibung", "Stück", "Budget",
	"Sichtbarkeit", "Status", "Erstellt von", "Freigegeben von", "Ablehnungsgrund",
}

// ExportCSV writes the visible entries as semicolon separated values with
// German decimal commas.
func (s *financeService) ExportCSV(ctx context.Context, p *access.Principal, query *finance.EntryQuery, w io.Writer) error {
	if err := access.Require(p, access.PermFinanceExport); err != nil {
		return err
	}
	q := finance.EntryQuery{}
	if query != nil {
		q = *query
	}
	q.Limit, q.Offset = 0, 0
	entries, err := s.ListEntries(ctx, p, &q)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, e := range entries {
		kind := "Ausgabe"
		if e.Kind == finance.KindIncome {
			kind = "Einnahme"
		}
		record := []string{
			e.BookedOn.Format(time.DateOnly),
			kind,
			FormatCents(e.AmountCents),
			e.Description,
			deref(e.ShowID),
			deref(e.BudgetID),
			string(e.Scope),
			string(e.Status),
			e.CreatedBy,
			deref(e.ApprovedBy),
			e.RejectionReason,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Exported %d finance entries for %s", len(entries), p.UserID))
	return nil
}

// FormatCents renders cents as "1234,56".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s,%02d", sign, strconv.FormatInt(cents/100, 10), cents%100)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
