package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/infrastructure/persistence/models"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormInviteRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormInviteRepository creates a new GORM-based InviteRepository implementation
func NewGormInviteRepository(db *gorm.DB, logger logger.Logger) (onboarding.InviteRepository, error) {
	return &gormInviteRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormInviteRepository) Create(ctx context.Context, invite *onboarding.Invite) error {
	if err := invite.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.InviteModel{}
	model.FromDomain(invite)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create invite: %w", translateError(err, nil))
	}

	r.logger.Info("Created invite with id ", invite.ID)
	return nil
}

func (r *gormInviteRepository) GetByID(ctx context.Context, id string) (*onboarding.Invite, error) {
	var model models.InviteModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch invite %s: %w", id, translateError(err, onboarding.ErrInviteNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormInviteRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*onboarding.Invite, error) {
	var model models.InviteModel
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch invite by token: %w", translateError(err, onboarding.ErrInviteNotFound))
	}
	return model.ToDomain(), nil
}

func (r *gormInviteRepository) List(ctx context.Context, includeClosed bool) ([]*onboarding.Invite, error) {
	var modelList []*models.InviteModel
	dbQuery := r.db.WithContext(ctx).Model(&models.InviteModel{})
	if !includeClosed {
		dbQuery = dbQuery.Where("redeemed_at IS NULL AND revoked_at IS NULL")
	}
	if err := dbQuery.Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}

	domainList := make([]*onboarding.Invite, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormInviteRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.InviteModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke invite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	r.logger.Info("Revoked invite with id ", id)
	return nil
}

func (r *gormInviteRepository) MarkRedeemed(ctx context.Context, id, userID string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.InviteModel{}).
		Where("id = ? AND redeemed_at IS NULL AND revoked_at IS NULL AND expires_at > ?", id, at).
		Updates(map[string]interface{}{
			"redeemed_at": at,
			"redeemed_by": userID,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark invite redeemed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		invite, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		switch invite.Status(at) {
		case onboarding.InviteStatusRevoked:
			return onboarding.ErrInviteRevoked
		case onboarding.InviteStatusExpired:
			return onboarding.ErrInviteExpired
		}
		return onboarding.ErrInviteAlreadyRedeemed
	}

	r.logger.Info("Redeemed invite with id ", id)
	return nil
}

type gormProfileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProfileRepository creates a new GORM-based ProfileRepository implementation
func NewGormProfileRepository(db *gorm.DB, logger logger.Logger) (onboarding.ProfileRepository, error) {
	return &gormProfileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProfileRepository) Create(ctx context.Context, profile *onboarding.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ProfileModel{}
	model.FromDomain(profile)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create onboarding profile: %w", translateError(err, nil))
	}

	r.logger.Info("Created onboarding profile for user ", profile.UserID)
	return nil
}

func (r *gormProfileRepository) GetByUserID(ctx context.Context, userID string) (*onboarding.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch onboarding profile: %w", translateError(err, onboarding.ErrProfileNotFound))
	}
	return model.ToDomain(), nil
}
