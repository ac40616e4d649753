package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/infrastructure/persistence/models"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (members.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *members.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		err = translateError(err, nil)
		if errors.Is(err, ErrDuplicate) {
			return members.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.Email = model.Email
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	r.logger.Info("Created user with id ", user.ID)
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, userID string) (*members.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Preload("Roles").Where("id = ?", userID).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, translateError(err, members.ErrNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*members.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).Preload("Roles").
		Where("email = ?", members.NormalizeEmail(email)).
		First(&model).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", translateError(err, members.ErrNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) List(ctx context.Context, query *members.UserQuery) ([]*members.User, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.UserModel
	dbQuery := r.db.WithContext(ctx).Model(&models.UserModel{}).Preload("Roles")

	if !query.IncludeInactive {
		dbQuery = dbQuery.Where("active = ?", true)
	}
	if search := strings.ToLower(strings.TrimSpace(query.Search)); search != "" {
		pattern := "%" + search + "%"
		dbQuery = dbQuery.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR email LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if query.Role != "" {
		dbQuery = dbQuery.Where("id IN (?)",
			r.db.Model(&models.UserRoleModel{}).Select("user_id").Where("role = ?", string(query.Role)))
	}

	dbQuery = dbQuery.Order("last_name asc").Order("first_name asc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	domainList := make([]*members.User, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormUserRepository) Update(ctx context.Context, user *members.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":         members.NormalizeEmail(user.Email),
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"phone":         user.Phone,
			"password_hash": user.PasswordHash,
			"active":        user.Active,
			"updated_at":    user.UpdatedAt,
		})
	if err := result.Error; err != nil {
		err = translateError(err, nil)
		if errors.Is(err, ErrDuplicate) {
			return members.ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected == 0 {
		return members.ErrNotFound
	}

	r.logger.Info("Updated user with id ", user.ID)
	return nil
}

func (r *gormUserRepository) SetRoles(ctx context.Context, userID string, roles []access.Role) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserModel{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return members.ErrNotFound
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRoleModel{}).Error; err != nil {
			return err
		}
		rows := models.RoleRows(userID, roles)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if errors.Is(err, members.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to set roles: %w", err)
	}

	r.logger.Info("Updated roles of user with id ", userID)
	return nil
}

func (r *gormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
