package persistence

import (
	"context"
	"fmt"

	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/infrastructure/persistence/models"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormShowRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormShowRepository creates a new GORM-based ShowRepository implementation
func NewGormShowRepository(db *gorm.DB, logger logger.Logger) (shows.ShowRepository, error) {
	return &gormShowRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormShowRepository) Create(ctx context.Context, show *shows.Show) error {
	if err := show.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ShowModel{}
	model.FromDomain(show)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create show: %w", translateError(err, nil))
	}

	r.logger.Info("Created show with id ", show.ID)
	return nil
}

func (r *gormShowRepository) GetByID(ctx context.Context, id string) (*shows.Show, error) {
	var model models.ShowModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch show %s: %w", id, translateError(err, shows.ErrNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormShowRepository) List(ctx context.Context, query *shows.ShowQuery) ([]*shows.Show, error) {
	var modelList []*models.ShowModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ShowModel{})

	if query != nil {
		if query.Year != 0 {
			dbQuery = dbQuery.Where("year = ?", query.Year)
		}
		if query.PublicOnly {
			dbQuery = dbQuery.Where("is_public = ?", true)
		}
	}

	if err := dbQuery.Order("year desc").Order("premiere_date desc").Order("title asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}

	domainList := make([]*shows.Show, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormShowRepository) Update(ctx context.Context, show *shows.Show) error {
	if err := show.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ShowModel{}
	model.FromDomain(show)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update show: %w", err)
	}

	r.logger.Info("Updated show with id ", show.ID)
	return nil
}

func (r *gormShowRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ShowModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete show: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shows.ErrNotFound
	}

	r.logger.Info("Deleted show with id ", id)
	return nil
}

type gormGalleryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormGalleryRepository creates a new GORM-based GalleryRepository implementation
func NewGormGalleryRepository(db *gorm.DB, logger logger.Logger) (shows.GalleryRepository, error) {
	return &gormGalleryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormGalleryRepository) Create(ctx context.Context, image *shows.GalleryImage) error {
	if err := image.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.GalleryImageModel{}
	model.FromDomain(image)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create gallery image: %w", translateError(err, nil))
	}

	r.logger.Info("Created gallery image with id ", image.ID)
	return nil
}

func (r *gormGalleryRepository) GetByID(ctx context.Context, id string) (*shows.GalleryImage, error) {
	var model models.GalleryImageModel
	if err := r.db.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch gallery image %s: %w", id, translateError(err, shows.ErrImageNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormGalleryRepository) ListByShows(ctx context.Context, showIDs []string) ([]*shows.GalleryImage, error) {
	if len(showIDs) == 0 {
		return nil, nil
	}

	var modelList []*models.GalleryImageModel
	err := r.db.WithContext(ctx).Preload("Tags").
		Where("show_id IN ?", showIDs).
		Order("sort_order asc").Order("created_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}

	domainList := make([]*shows.GalleryImage, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormGalleryRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", id).Delete(&models.GalleryImageTagModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.GalleryImageModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shows.ErrImageNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete gallery image: %w", err)
	}

	r.logger.Info("Deleted gallery image with id ", id)
	return nil
}
