// Package bootstrap builds the repositories, adapters and application services
// from a RestConfig. The REST API and the CLI share this wiring.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/sommertheater/portal/internal/app"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/domain/measurements"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/domain/poster"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/infrastructure/holidayfeed"
	"github.com/sommertheater/portal/internal/infrastructure/markdown"
	"github.com/sommertheater/portal/internal/infrastructure/persistence"
	pdfposter "github.com/sommertheater/portal/internal/infrastructure/poster"
	"github.com/sommertheater/portal/internal/infrastructure/security"
	"github.com/sommertheater/portal/internal/infrastructure/storage"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/config"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Container holds every application service plus the shared infrastructure.
type Container struct {
	DB       *gorm.DB
	Clock    clock.Clock
	Location *time.Location

	Access       access.Service
	Auth         auth.Service
	Members      members.Service
	Onboarding   onboarding.Service
	Consent      consent.Service
	Measurements measurements.Service
	Dietary      dietary.Service
	Shows        shows.ShowService
	Gallery      shows.GalleryService
	Chronik      shows.ChronikService
	Posters      poster.Service
	Templates    rehearsals.TemplateService
	Rehearsals   rehearsals.Service
	Holidays     holidays.Service
	Finance      finance.Service
}

type repositories struct {
	users       members.UserRepository
	rolePerms   access.RolePermissionRepository
	invites     onboarding.InviteRepository
	profiles    onboarding.ProfileRepository
	uow         onboarding.UnitOfWork
	consents    consent.Repository
	measures    measurements.Repository
	dietary     dietary.Repository
	shows       shows.ShowRepository
	gallery     shows.GalleryRepository
	holidays    holidays.Repository
	templates   rehearsals.TemplateRepository
	rehearsals  rehearsals.RehearsalRepository
	attendance  rehearsals.AttendanceRepository
	budgets     finance.BudgetRepository
	entries     finance.EntryRepository
}

// New opens the database and wires all services. The schema is not touched;
// call Migrate for that.
func New(cfg *config.RestConfig, log logger.Logger) (*Container, error) {
	loc, err := cfg.Organization.Location()
	if err != nil {
		return nil, err
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	repos, err := initializeRepositories(db, log)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	c := &Container{DB: db, Clock: clock.System(), Location: loc}
	if err := c.initializeServices(cfg, repos, log); err != nil {
		_ = persistence.CloseDB(db)
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	log.Info("Application services initialized successfully")
	return c, nil
}

// Migrate updates the schema and installs the default permission matrix on
// an empty database.
func (c *Container) Migrate(ctx context.Context) error {
	if err := persistence.Migrate(c.DB.WithContext(ctx)); err != nil {
		return err
	}
	return c.Access.SeedDefaults(ctx)
}

// Ping checks the database connection.
func (c *Container) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database connection.
func (c *Container) Close() error {
	return persistence.CloseDB(c.DB)
}

func initializeRepositories(db *gorm.DB, log logger.Logger) (*repositories, error) {
	var (
		r   repositories
		err error
	)
	steps := []struct {
		name string
		fn   func() error
	}{
		{"user", func() error { r.users, err = persistence.NewGormUserRepository(db, log); return err }},
		{"role permission", func() error { r.rolePerms, err = persistence.NewGormRolePermissionRepository(db, log); return err }},
		{"invite", func() error { r.invites, err = persistence.NewGormInviteRepository(db, log); return err }},
		{"profile", func() error { r.profiles, err = persistence.NewGormProfileRepository(db, log); return err }},
		{"unit of work", func() error { r.uow, err = persistence.NewGormUnitOfWork(db, log); return err }},
		{"photo consent", func() error { r.consents, err = persistence.NewGormPhotoConsentRepository(db, log); return err }},
		{"measurement", func() error { r.measures, err = persistence.NewGormMeasurementRepository(db, log); return err }},
		{"dietary", func() error { r.dietary, err = persistence.NewGormDietaryRepository(db, log); return err }},
		{"show", func() error { r.shows, err = persistence.NewGormShowRepository(db, log); return err }},
		{"gallery", func() error { r.gallery, err = persistence.NewGormGalleryRepository(db, log); return err }},
		{"holiday", func() error { r.holidays, err = persistence.NewGormHolidayRepository(db, log); return err }},
		{"template", func() error { r.templates, err = persistence.NewGormTemplateRepository(db, log); return err }},
		{"rehearsal", func() error { r.rehearsals, err = persistence.NewGormRehearsalRepository(db, log); return err }},
		{"attendance", func() error { r.attendance, err = persistence.NewGormAttendanceRepository(db, log); return err }},
		{"budget", func() error { r.budgets, err = persistence.NewGormBudgetRepository(db, log); return err }},
		{"entry", func() error { r.entries, err = persistence.NewGormEntryRepository(db, log); return err }},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, fmt.Errorf("failed to create %s repository: %w", step.name, err)
		}
	}
	return &r, nil
}

// holidayFetchers builds the fetch chain: ICS and JSON when configured, the
// built-in calendar always last.
func holidayFetchers(cfg config.HolidaySettings) ([]holidays.Fetcher, error) {
	client := holidayfeed.NewHTTPClient(cfg.Timeout)
	var fetchers []holidays.Fetcher

	if cfg.ICSURL != "" {
		f, err := holidayfeed.NewICSFetcher(cfg.ICSURL, client)
		if err != nil {
			return nil, err
		}
		fetchers = append(fetchers, f)
	}
	if cfg.JSONURL != "" {
		f, err := holidayfeed.NewJSONFetcher(cfg.JSONURL, cfg.JSONPath, client)
		if err != nil {
			return nil, err
		}
		fetchers = append(fetchers, f)
	}
	return append(fetchers, holidayfeed.NewBuiltinFetcher()), nil
}

func (c *Container) initializeServices(cfg *config.RestConfig, r *repositories, log logger.Logger) error {
	var err error

	hasher, err := security.NewBcryptHasher(bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}
	tokens, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, c.Clock)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}
	store, err := storage.NewLocalImageStore(cfg.Storage.GalleryDir, log)
	if err != nil {
		return fmt.Errorf("failed to create image store: %w", err)
	}
	fetchers, err := holidayFetchers(cfg.Holidays)
	if err != nil {
		return fmt.Errorf("failed to create holiday fetchers: %w", err)
	}
	renderer := pdfposter.NewRenderer(c.Clock.Now)

	if c.Access, err = app.NewAccessService(r.rolePerms, log); err != nil {
		return fmt.Errorf("failed to create access service: %w", err)
	}
	if c.Auth, err = app.NewAuthService(r.users, c.Access, hasher, tokens, c.Clock, log); err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	if c.Members, err = app.NewMemberService(r.users, hasher, c.Clock, log); err != nil {
		return fmt.Errorf("failed to create member service: %w", err)
	}
	c.Onboarding, err = app.NewOnboardingService(
		r.invites, r.profiles, r.uow,
		security.NewInviteTokenGenerator(), hasher, c.Clock,
		app.OnboardingSettings{InviteTTL: cfg.Auth.InviteTTL, BaseURL: cfg.Auth.BaseURL},
		log,
	)
	if err != nil {
		return fmt.Errorf("failed to create onboarding service: %w", err)
	}
	if c.Consent, err = app.NewConsentService(r.consents, r.profiles, c.Clock, log); err != nil {
		return fmt.Errorf("failed to create consent service: %w", err)
	}
	if c.Measurements, err = app.NewMeasurementService(r.measures, c.Clock, log); err != nil {
		return fmt.Errorf("failed to create measurement service: %w", err)
	}
	if c.Dietary, err = app.NewDietaryService(r.dietary, c.Clock, log); err != nil {
		return fmt.Errorf("failed to create dietary service: %w", err)
	}
	if c.Shows, err = app.NewShowService(r.shows, r.gallery, store, c.Clock, log); err != nil {
		return fmt.Errorf("failed to create show service: %w", err)
	}
	if c.Gallery, err = app.NewGalleryService(r.shows, r.gallery, store, c.Consent, c.Clock, log); err != nil {
		return fmt.Errorf("failed to create gallery service: %w", err)
	}
	if c.Chronik, err = app.NewChronikService(r.shows, r.gallery, c.Consent, markdown.NewRenderer(), log); err != nil {
		return fmt.Errorf("failed to create chronik service: %w", err)
	}
	c.Posters, err = app.NewPosterService(r.shows, renderer,
		app.PosterSettings{Organization: cfg.Organization.Name, City: cfg.Organization.City}, log)
	if err != nil {
		return fmt.Errorf("failed to create poster service: %w", err)
	}
	if c.Holidays, err = app.NewHolidayService(r.holidays, fetchers, cfg.Holidays.Region, log); err != nil {
		return fmt.Errorf("failed to create holiday service: %w", err)
	}
	if c.Templates, err = app.NewTemplateService(r.templates, r.rehearsals, c.Holidays, c.Clock, c.Location, log); err != nil {
		return fmt.Errorf("failed to create template service: %w", err)
	}
	c.Rehearsals, err = app.NewRehearsalService(r.rehearsals, r.attendance, r.shows, renderer, c.Clock,
		app.PlanSettings{Organization: cfg.Organization.Name, Location: c.Location}, log)
	if err != nil {
		return fmt.Errorf("failed to create rehearsal service: %w", err)
	}
	c.Finance, err = app.NewFinanceService(r.budgets, r.entries, c.Clock, cfg.Organization.FinanceApprovalThresholdCents, log)
	if err != nil {
		return fmt.Errorf("failed to create finance service: %w", err)
	}
	return nil
}
