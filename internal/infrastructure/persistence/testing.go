//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/finance"
	"github.com/sommertheater/portal/internal/domain/holidays"
	"github.com/sommertheater/portal/internal/domain/measurements"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/config"
	"github.com/sommertheater/portal/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB              *gorm.DB
	UserRepo        members.UserRepository
	RolePermRepo    access.RolePermissionRepository
	InviteRepo      onboarding.InviteRepository
	ProfileRepo     onboarding.ProfileRepository
	UnitOfWork      onboarding.UnitOfWork
	ConsentRepo     consent.Repository
	MeasurementRepo measurements.Repository
	DietaryRepo     dietary.Repository
	ShowRepo        shows.ShowRepository
	GalleryRepo     shows.GalleryRepository
	TemplateRepo    rehearsals.TemplateRepository
	RehearsalRepo   rehearsals.RehearsalRepository
	AttendanceRepo  rehearsals.AttendanceRepository
	HolidayRepo     holidays.Repository
	BudgetRepo      finance.BudgetRepository
	EntryRepo       finance.EntryRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	tc := &TestContext{DB: db}
	tc.UserRepo, err = NewGormUserRepository(db, logger)
	require.NoError(t, err)
	tc.RolePermRepo, err = NewGormRolePermissionRepository(db, logger)
	require.NoError(t, err)
	tc.InviteRepo, err = NewGormInviteRepository(db, logger)
	require.NoError(t, err)
	tc.ProfileRepo, err = NewGormProfileRepository(db, logger)
	require.NoError(t, err)
	tc.UnitOfWork, err = NewGormUnitOfWork(db, logger)
	require.NoError(t, err)
	tc.ConsentRepo, err = NewGormPhotoConsentRepository(db, logger)
	require.NoError(t, err)
	tc.MeasurementRepo, err = NewGormMeasurementRepository(db, logger)
	require.NoError(t, err)
	tc.DietaryRepo, err = NewGormDietaryRepository(db, logger)
	require.NoError(t, err)
	tc.ShowRepo, err = NewGormShowRepository(db, logger)
	require.NoError(t, err)
	tc.GalleryRepo, err = NewGormGalleryRepository(db, logger)
	require.NoError(t, err)
	tc.TemplateRepo, err = NewGormTemplateRepository(db, logger)
	require.NoError(t, err)
	tc.RehearsalRepo, err = NewGormRehearsalRepository(db, logger)
	require.NoError(t, err)
	tc.AttendanceRepo, err = NewGormAttendanceRepository(db, logger)
	require.NoError(t, err)
	tc.HolidayRepo, err = NewGormHolidayRepository(db, logger)
	require.NoError(t, err)
	tc.BudgetRepo, err = NewGormBudgetRepository(db, logger)
	require.NoError(t, err)
	tc.EntryRepo, err = NewGormEntryRepository(db, logger)
	require.NoError(t, err)

	return tc
}

// CreateTestUser stores an active user with the given roles
func CreateTestUser(t *testing.T, tc *TestContext, email string, roles ...access.Role) *members.User {
	t.Helper()

	if len(roles) == 0 {
		roles = []access.Role{access.RoleMitglied}
	}
	now := time.Now().UTC()
	user := &members.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    "Test",
		LastName:     strings.Split(email, "@")[0],
		PasswordHash: "$2a$10$testhash",
		Active:       true,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, tc.UserRepo.Create(context.Background(), user))
	return user
}

// CreateTestShow stores a show for year
func CreateTestShow(t *testing.T, tc *TestContext, year int, title string, public bool) *shows.Show {
	t.Helper()

	show := &shows.Show{
		ID:       uuid.NewString(),
		Year:     year,
		Title:    title,
		IsPublic: public,
	}
	require.NoError(t, tc.ShowRepo.Create(context.Background(), show))
	return show
}

// NewTestEntry returns a pending finance entry without storing it
func NewTestEntry(createdBy string, scope access.VisibilityScope, amount int64) *finance.Entry {
	return &finance.Entry{
		ID:          uuid.NewString(),
		Kind:        finance.KindExpense,
		AmountCents: amount,
		Description: "Stoff für Kostüme",
		BookedOn:    time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		Scope:       scope,
		Status:      finance.StatusPending,
		CreatedBy:   createdBy,
	}
}
