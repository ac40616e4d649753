package persistence

import (
	"context"
	"fmt"

	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/measurements"
	"github.com/sommertheater/portal/internal/infrastructure/persistence/models"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormPhotoConsentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPhotoConsentRepository creates a new GORM-based photo consent repository
func NewGormPhotoConsentRepository(db *gorm.DB, logger logger.Logger) (consent.Repository, error) {
	return &gormPhotoConsentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPhotoConsentRepository) Create(ctx context.Context, c *consent.PhotoConsent) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PhotoConsentModel{}
	model.FromDomain(c)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create photo consent: %w", translateError(err, nil))
	}

	r.logger.Info("Created photo consent with id ", c.ID)
	return nil
}

func (r *gormPhotoConsentRepository) GetByUserID(ctx context.Context, userID string) (*consent.PhotoConsent, error) {
	var model models.PhotoConsentModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch photo consent: %w", translateError(err, consent.ErrNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormPhotoConsentRepository) Update(ctx context.Context, c *consent.PhotoConsent) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PhotoConsentModel{}
	model.FromDomain(c)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update photo consent: %w", err)
	}

	r.logger.Info("Updated photo consent with id ", c.ID)
	return nil
}

func (r *gormPhotoConsentRepository) ListByStatus(ctx context.Context, status consent.Status) ([]*consent.PhotoConsent, error) {
	var modelList []*models.PhotoConsentModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("updated_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photo consents: %w", err)
	}
	return consentsToDomain(modelList), nil
}

func (r *gormPhotoConsentRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]*consent.PhotoConsent, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var modelList []*models.PhotoConsentModel
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list photo consents: %w", err)
	}
	return consentsToDomain(modelList), nil
}

func consentsToDomain(modelList []*models.PhotoConsentModel) []*consent.PhotoConsent {
	domainList := make([]*consent.PhotoConsent, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}

type gormMeasurementRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMeasurementRepository creates a new GORM-based measurement repository
func NewGormMeasurementRepository(db *gorm.DB, logger logger.Logger) (measurements.Repository, error) {
	return &gormMeasurementRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMeasurementRepository) Upsert(ctx context.Context, list ...*measurements.Measurement) error {
	if len(list) == 0 {
		return nil
	}

	modelList := make([]*models.MeasurementModel, len(list))
	for i, m := range list {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("validation error: %w", err)
		}
		modelList[i] = &models.MeasurementModel{}
		modelList[i].FromDomain(m)
	}

	// single statement: the batch is all or nothing
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "unit", "notes", "measured_by", "updated_at"}),
	}).Create(&modelList).Error
	if err != nil {
		return fmt.Errorf("failed to upsert measurements: %w", err)
	}

	r.logger.Info("Stored ", len(list), " measurements for user ", list[0].UserID)
	return nil
}

func (r *gormMeasurementRepository) ListByUser(ctx context.Context, userID string) ([]*measurements.Measurement, error) {
	var modelList []*models.MeasurementModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("kind").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	return measurementsToDomain(modelList), nil
}

func (r *gormMeasurementRepository) ListAll(ctx context.Context) ([]*measurements.Measurement, error) {
	var modelList []*models.MeasurementModel
	if err := r.db.WithContext(ctx).Order("user_id").Order("kind").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	return measurementsToDomain(modelList), nil
}

func (r *gormMeasurementRepository) Delete(ctx context.Context, userID string, kind measurements.Kind) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, string(kind)).
		Delete(&models.MeasurementModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete measurement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return measurements.ErrNotFound
	}

	r.logger.Info("Deleted measurement ", kind, " for user ", userID)
	return nil
}

func measurementsToDomain(modelList []*models.MeasurementModel) []*measurements.Measurement {
	domainList := make([]*measurements.Measurement, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}

type gormDietaryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDietaryRepository creates a new GORM-based dietary restriction repository
func NewGormDietaryRepository(db *gorm.DB, logger logger.Logger) (dietary.Repository, error) {
	return &gormDietaryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDietaryRepository) Create(ctx context.Context, d *dietary.Restriction) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.DietaryRestrictionModel{}
	model.FromDomain(d)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create dietary restriction: %w", translateError(err, nil))
	}

	r.logger.Info("Created dietary restriction with id ", d.ID)
	return nil
}

func (r *gormDietaryRepository) GetByID(ctx context.Context, id string) (*dietary.Restriction, error) {
	var model models.DietaryRestrictionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch dietary restriction: %w", translateError(err, dietary.ErrNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormDietaryRepository) ListByUser(ctx context.Context, userID string) ([]*dietary.Restriction, error) {
	var modelList []*models.DietaryRestrictionModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("label").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list dietary restrictions: %w", err)
	}
	return restrictionsToDomain(modelList), nil
}

func (r *gormDietaryRepository) ListAll(ctx context.Context) ([]*dietary.Restriction, error) {
	var modelList []*models.DietaryRestrictionModel
	if err := r.db.WithContext(ctx).Order("label").Order("created_at").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list dietary restrictions: %w", err)
	}
	return restrictionsToDomain(modelList), nil
}

func (r *gormDietaryRepository) Update(ctx context.Context, d *dietary.Restriction) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.DietaryRestrictionModel{}
	model.FromDomain(d)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update dietary restriction: %w", err)
	}

	r.logger.Info("Updated dietary restriction with id ", d.ID)
	return nil
}

func (r *gormDietaryRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DietaryRestrictionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete dietary restriction: %w", err)
	}

	r.logger.Info("Deleted dietary restriction with id ", id)
	return nil
}

func restrictionsToDomain(modelList []*models.DietaryRestrictionModel) []*dietary.Restriction {
	domainList := make([]*dietary.Restriction, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
