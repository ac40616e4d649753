package persistence

import (
	"context"
	"fmt"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/infrastructure/persistence/models"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRolePermissionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRolePermissionRepository creates a new GORM-based RolePermissionRepository implementation
func NewGormRolePermissionRepository(db *gorm.DB, logger logger.Logger) (access.RolePermissionRepository, error) {
	return &gormRolePermissionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRolePermissionRepository) ListByRoles(ctx context.Context, roles []access.Role) ([]access.Permission, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	var perms []string
	err := r.db.WithContext(ctx).Model(&models.RolePermissionModel{}).
		Distinct("permission").
		Where("role IN ?", names).
		Order("permission").
		Pluck("permission", &perms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	out := make([]access.Permission, len(perms))
	for i, p := range perms {
		out[i] = access.Permission(p)
	}
	return out, nil
}

func (r *gormRolePermissionRepository) ListAll(ctx context.Context) ([]access.RolePermission, error) {
	var modelList []models.RolePermissionModel
	if err := r.db.WithContext(ctx).Order("role").Order("permission").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	out := make([]access.RolePermission, len(modelList))
	for i := range modelList {
		out[i] = modelList[i].ToDomain()
	}
	return out, nil
}

func (r *gormRolePermissionRepository) Grant(ctx context.Context, role access.Role, perm access.Permission) error {
	model := &models.RolePermissionModel{Role: string(role), Permission: string(perm)}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	r.logger.Info("Granted permission ", perm, " to role ", role)
	return nil
}

func (r *gormRolePermissionRepository) Revoke(ctx context.Context, role access.Role, perm access.Permission) error {
	err := r.db.WithContext(ctx).
		Where("role = ? AND permission = ?", string(role), string(perm)).
		Delete(&models.RolePermissionModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	r.logger.Info("Revoked permission ", perm, " from role ", role)
	return nil
}

func (r *gormRolePermissionRepository) ReplaceAll(ctx context.Context, rows []access.RolePermission) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		modelList := make([]models.RolePermissionModel, len(rows))
		for i, row := range rows {
			modelList[i] = models.RolePermissionModel{Role: string(row.Role), Permission: string(row.Permission)}
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&modelList).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace permission matrix: %w", err)
	}
	r.logger.Info("Replaced permission matrix with ", len(rows), " rows")
	return nil
}

func (r *gormRolePermissionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RolePermissionModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count role permissions: %w", err)
	}
	return count, nil
}
