package persistence

import (
	"context"
	"fmt"

	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/infrastructure/persistence/models"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormTemplateRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTemplateRepository creates a new GORM-based rehearsal template repository
func NewGormTemplateRepository(db *gorm.DB, logger logger.Logger) (rehearsals.TemplateRepository, error) {
	return &gormTemplateRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTemplateRepository) Create(ctx context.Context, t *rehearsals.Template) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RehearsalTemplateModel{}
	model.FromDomain(t)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create rehearsal template: %w", translateError(err, nil))
	}

	r.logger.Info("Created rehearsal template with id ", t.ID)
	return nil
}

func (r *gormTemplateRepository) GetByID(ctx context.Context, id string) (*rehearsals.Template, error) {
	var model models.RehearsalTemplateModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rehearsal template %s: %w", id, translateError(err, rehearsals.ErrTemplateNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormTemplateRepository) List(ctx context.Context, activeOnly bool) ([]*rehearsals.Template, error) {
	var modelList []*models.RehearsalTemplateModel
	dbQuery := r.db.WithContext(ctx).Model(&models.RehearsalTemplateModel{})
	if activeOnly {
		dbQuery = dbQuery.Where("active = ?", true)
	}
	if err := dbQuery.Order("weekday asc").Order("start_time asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list rehearsal templates: %w", err)
	}

	domainList := make([]*rehearsals.Template, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormTemplateRepository) Update(ctx context.Context, t *rehearsals.Template) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RehearsalTemplateModel{}
	model.FromDomain(t)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update rehearsal template: %w", err)
	}

	r.logger.Info("Updated rehearsal template with id ", t.ID)
	return nil
}

func (r *gormTemplateRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.RehearsalTemplateModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete rehearsal template: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return rehearsals.ErrTemplateNotFound
	}

	r.logger.Info("Deleted rehearsal template with id ", id)
	return nil
}

type gormRehearsalRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRehearsalRepository creates a new GORM-based RehearsalRepository implementation
func NewGormRehearsalRepository(db *gorm.DB, logger logger.Logger) (rehearsals.RehearsalRepository, error) {
	return &gormRehearsalRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRehearsalRepository) Create(ctx context.Context, rehearsal *rehearsals.Rehearsal) error {
	if err := rehearsal.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RehearsalModel{}
	model.FromDomain(rehearsal)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create rehearsal: %w", translateError(err, nil))
	}

	r.logger.Info("Created rehearsal with id ", rehearsal.ID)
	return nil
}

func (r *gormRehearsalRepository) CreateMany(ctx context.Context, rs []*rehearsals.Rehearsal) error {
	if len(rs) == 0 {
		return nil
	}

	modelList := make([]*models.RehearsalModel, len(rs))
	for i, rehearsal := range rs {
		if err := rehearsal.Validate(); err != nil {
			return fmt.Errorf("validation error: %w", err)
		}
		modelList[i] = &models.RehearsalModel{}
		modelList[i].FromDomain(rehearsal)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&modelList).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create rehearsals: %w", translateError(err, nil))
	}

	r.logger.Info("Created ", len(rs), " rehearsals")
	return nil
}

func (r *gormRehearsalRepository) GetByID(ctx context.Context, id string) (*rehearsals.Rehearsal, error) {
	var model models.RehearsalModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rehearsal %s: %w", id, translateError(err, rehearsals.ErrNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormRehearsalRepository) List(ctx context.Context, query *rehearsals.Query) ([]*rehearsals.Rehearsal, error) {
	var modelList []*models.RehearsalModel
	dbQuery := r.db.WithContext(ctx).Model(&models.RehearsalModel{})

	if query != nil {
		if !query.From.IsZero() {
			dbQuery = dbQuery.Where("starts_at >= ?", query.From.UTC())
		}
		if !query.To.IsZero() {
			dbQuery = dbQuery.Where("starts_at < ?", query.To.UTC())
		}
		if query.ShowID != "" {
			dbQuery = dbQuery.Where("show_id = ?", query.ShowID)
		}
		if !query.IncludeCancelled {
			dbQuery = dbQuery.Where("status = ?", string(rehearsals.StatusScheduled))
		}
	}

	if err := dbQuery.Order("starts_at asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list rehearsals: %w", err)
	}

	domainList := make([]*rehearsals.Rehearsal, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormRehearsalRepository) Update(ctx context.Context, rehearsal *rehearsals.Rehearsal) error {
	if err := rehearsal.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RehearsalModel{}
	model.FromDomain(rehearsal)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update rehearsal: %w", err)
	}

	r.logger.Info("Updated rehearsal with id ", rehearsal.ID)
	return nil
}

func (r *gormRehearsalRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rehearsal_id = ?", id).Delete(&models.AttendanceModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.RehearsalModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return rehearsals.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete rehearsal: %w", err)
	}

	r.logger.Info("Deleted rehearsal with id ", id)
	return nil
}

type gormAttendanceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAttendanceRepository creates a new GORM-based AttendanceRepository implementation
func NewGormAttendanceRepository(db *gorm.DB, logger logger.Logger) (rehearsals.AttendanceRepository, error) {
	return &gormAttendanceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAttendanceRepository) Upsert(ctx context.Context, a *rehearsals.Attendance) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AttendanceModel{}
	model.FromDomain(a)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rehearsal_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"response", "note", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to store attendance: %w", err)
	}

	r.logger.Info("Stored attendance of user ", a.UserID, " for rehearsal ", a.RehearsalID)
	return nil
}

func (r *gormAttendanceRepository) ListByRehearsal(ctx context.Context, rehearsalID string) ([]*rehearsals.Attendance, error) {
	var modelList []*models.AttendanceModel
	if err := r.db.WithContext(ctx).Where("rehearsal_id = ?", rehearsalID).Order("updated_at asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendanceToDomain(modelList), nil
}

func (r *gormAttendanceRepository) ListByUser(ctx context.Context, userID string, rehearsalIDs []string) ([]*rehearsals.Attendance, error) {
	if len(rehearsalIDs) == 0 {
		return nil, nil
	}
	var modelList []*models.AttendanceModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND rehearsal_id IN ?", userID, rehearsalIDs).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendanceToDomain(modelList), nil
}

func attendanceToDomain(modelList []*models.AttendanceModel) []*rehearsals.Attendance {
	domainList := make([]*rehearsals.Attendance, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
