package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/infrastructure/persistence/models"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormBudgetRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormBudgetRepository creates a new GORM-based BudgetRepository implementation
func NewGormBudgetRepository(db *gorm.DB, logger logger.Logger) (finance.BudgetRepository, error) {
	return &gormBudgetRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormBudgetRepository) Create(ctx context.Context, b *finance.Budget) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.FinanceBudgetModel{}
	model.FromDomain(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return budgetWriteError("create", err)
	}

	r.logger.Info("Created finance budget with id ", b.ID)
	return nil
}

func (r *gormBudgetRepository) GetByID(ctx context.Context, id string) (*finance.Budget, error) {
	var model models.FinanceBudgetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch finance budget %s: %w", id, translateError(err, finance.ErrBudgetNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormBudgetRepository) List(ctx context.Context, showID string, scopes []access.VisibilityScope) ([]*finance.Budget, error) {
	if len(scopes) == 0 {
		return []*finance.Budget{}, nil
	}

	var modelList []*models.FinanceBudgetModel
	dbQuery := r.db.WithContext(ctx).Model(&models.FinanceBudgetModel{}).
		Where("scope IN ?", scopeStrings(scopes))
	if showID != "" {
		dbQuery = dbQuery.Where("show_id = ?", showID)
	}
	if err := dbQuery.Order("category asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list finance budgets: %w", err)
	}

	domainList := make([]*finance.Budget, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormBudgetRepository) Update(ctx context.Context, b *finance.Budget) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.FinanceBudgetModel{}
	model.FromDomain(b)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return budgetWriteError("update", err)
	}

	r.logger.Info("Updated finance budget with id ", b.ID)
	return nil
}

func (r *gormBudgetRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FinanceEntryModel{}).Where("budget_id = ?", id).Update("budget_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.FinanceBudgetModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return finance.ErrBudgetNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete finance budget: %w", err)
	}

	r.logger.Info("Deleted finance budget with id ", id)
	return nil
}

func budgetWriteError(op string, err error) error {
	err = translateError(err, nil)
	if errors.Is(err, ErrDuplicate) {
		return finance.ErrBudgetExists
	}
	return fmt.Errorf("failed to %s finance budget: %w", op, err)
}

type gormEntryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormEntryRepository creates a new GORM-based EntryRepository implementation
func NewGormEntryRepository(db *gorm.DB, logger logger.Logger) (finance.EntryRepository, error) {
	return &gormEntryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormEntryRepository) Create(ctx context.Context, e *finance.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.FinanceEntryModel{}
	model.FromDomain(e)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create finance entry: %w", translateError(err, nil))
	}

	r.logger.Info("Created finance entry with id ", e.ID)
	return nil
}

func (r *gormEntryRepository) GetByID(ctx context.Context, id string) (*finance.Entry, error) {
	var model models.FinanceEntryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch finance entry %s: %w", id, translateError(err, finance.ErrEntryNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormEntryRepository) List(ctx context.Context, query *finance.EntryQuery) ([]*finance.Entry, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}
	if len(query.Scopes) == 0 {
		return []*finance.Entry{}, nil
	}

	var modelList []*models.FinanceEntryModel
	dbQuery := r.db.WithContext(ctx).Model(&models.FinanceEntryModel{}).
		Where("scope IN ?", scopeStrings(query.Scopes))

	if query.ShowID != "" {
		dbQuery = dbQuery.Where("show_id = ?", query.ShowID)
	}
	if query.Kind != "" {
		dbQuery = dbQuery.Where("kind = ?", string(query.Kind))
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", string(query.Status))
	}
	if !query.From.IsZero() {
		dbQuery = dbQuery.Where("booked_on >= ?", models.FormatDate(query.From))
	}
	if !query.To.IsZero() {
		dbQuery = dbQuery.Where("booked_on <= ?", models.FormatDate(query.To))
	}

	dbQuery = dbQuery.Order("booked_on desc").Order("created_at desc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list finance entries: %w", err)
	}

	domainList := make([]*finance.Entry, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormEntryRepository) Update(ctx context.Context, e *finance.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.FinanceEntryModel{}
	model.FromDomain(e)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update finance entry: %w", err)
	}

	r.logger.Info("Updated finance entry with id ", e.ID)
	return nil
}

func (r *gormEntryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FinanceEntryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete finance entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return finance.ErrEntryNotFound
	}

	r.logger.Info("Deleted finance entry with id ", id)
	return nil
}

func scopeStrings(scopes []access.VisibilityScope) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = string(s)
	}
	return out
}
