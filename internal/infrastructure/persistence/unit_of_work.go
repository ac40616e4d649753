package persistence

import (
	"context"

	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormUnitOfWork struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUnitOfWork creates a UnitOfWork that binds repositories to one GORM transaction
func NewGormUnitOfWork(db *gorm.DB, logger logger.Logger) (onboarding.UnitOfWork, error) {
	return &gormUnitOfWork{
		db:     db,
		logger: logger,
	}, nil
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(repos onboarding.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, _ := NewGormUserRepository(tx, u.logger)
		invites, _ := NewGormInviteRepository(tx, u.logger)
		profiles, _ := NewGormProfileRepository(tx, u.logger)
		dietaryRepo, _ := NewGormDietaryRepository(tx, u.logger)
		consents, _ := NewGormPhotoConsentRepository(tx, u.logger)

		return fn(onboarding.Repositories{
			Users:    users,
			Invites:  invites,
			Profiles: profiles,
			Dietary:  dietaryRepo,
			Consents: consents,
		})
	})
}
