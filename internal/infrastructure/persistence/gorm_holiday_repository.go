package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/infrastructure/persistence/models"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormHolidayRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormHolidayRepository creates a new GORM-based holiday repository
func NewGormHolidayRepository(db *gorm.DB, logger logger.Logger) (holidays.Repository, error) {
	return &gormHolidayRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormHolidayRepository) ReplaceYear(ctx context.Context, year int, region string, list []holidays.Holiday) error {
	modelList := make([]*models.HolidayModel, 0, len(list))
	for _, h := range list {
		if h.Date.Year() != year {
			continue
		}
		h.Region = region
		model := &models.HolidayModel{}
		model.FromDomain(h)
		modelList = append(modelList, model)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("year = ? AND region = ?", year, region).Delete(&models.HolidayModel{}).Error; err != nil {
			return err
		}
		if len(modelList) == 0 {
			return nil
		}
		return tx.Create(&modelList).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace holidays for %d: %w", year, err)
	}

	r.logger.Info("Stored ", len(modelList), " holidays for ", year, " in region ", region)
	return nil
}

func (r *gormHolidayRepository) ListYear(ctx context.Context, year int, region string) ([]holidays.Holiday, error) {
	var modelList []*models.HolidayModel
	err := r.db.WithContext(ctx).
		Where("year = ? AND region = ?", year, region).
		Order("date asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidaysToDomain(modelList), nil
}

func (r *gormHolidayRepository) ListBetween(ctx context.Context, from, to time.Time, region string) ([]holidays.Holiday, error) {
	var modelList []*models.HolidayModel
	err := r.db.WithContext(ctx).
		Where("region = ? AND date >= ? AND date <= ?", region, models.FormatDate(from), models.FormatDate(to)).
		Order("date asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidaysToDomain(modelList), nil
}

func holidaysToDomain(modelList []*models.HolidayModel) []holidays.Holiday {
	out := make([]holidays.Holiday, len(modelList))
	for i, model := range modelList {
		out[i] = model.ToDomain()
	}
	return out
}
