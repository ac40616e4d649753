//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

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
	"github.com/sommertheater/portal/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Test constants shared by the service tests
const (
	TestJWTSecret              = "integration-test-secret-0123456789"
	TestApprovalThresholdCents = 5000
	TestBaseURL                = "https://portal.example.org"
)

// StubFetcher is a holiday source with a canned answer
type StubFetcher struct {
	Src      holidays.Source
	Holidays []holidays.Holiday
	Err      error
	Calls    int
}

func (f *StubFetcher) Source() holidays.Source {
	return f.Src
}

func (f *StubFetcher) Fetch(ctx context.Context, year int, region string) ([]holidays.Holiday, error) {
	f.Calls++
	return f.Holidays, f.Err
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
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
	Templates    rehearsals.TemplateService
	Rehearsals   rehearsals.Service
	Holidays     holidays.Service
	Finance      finance.Service
	Poster       poster.Service

	// Infrastructure
	Clock       *clock.ManualClock
	Location    *time.Location
	Hasher      auth.PasswordHasher
	ICSFetcher  *StubFetcher
	JSONFetcher *StubFetcher
	DBContext   *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests.
// The ICS and JSON holiday sources fail unless a test fills them in.
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	ctx := context.Background()
	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	clk := clock.NewManualClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	hasher, err := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := security.NewJWTIssuer(TestJWTSecret, time.Hour, clk)
	require.NoError(t, err)

	s := &TestServices{
		Clock:       clk,
		Location:    loc,
		Hasher:      hasher,
		ICSFetcher:  &StubFetcher{Src: holidays.SourceICS, Err: context.DeadlineExceeded},
		JSONFetcher: &StubFetcher{Src: holidays.SourceJSON},
		DBContext:   dbContext,
	}

	s.Access, err = NewAccessService(dbContext.RolePermRepo, logger)
	require.NoError(t, err, "Failed to create AccessService")
	require.NoError(t, s.Access.SeedDefaults(ctx))

	s.Auth, err = NewAuthService(dbContext.UserRepo, s.Access, hasher, tokens, clk, logger)
	require.NoError(t, err, "Failed to create AuthService")

	s.Members, err = NewMemberService(dbContext.UserRepo, hasher, clk, logger)
	require.NoError(t, err, "Failed to create MemberService")

	s.Onboarding, err = NewOnboardingService(
		dbContext.InviteRepo,
		dbContext.ProfileRepo,
		dbContext.UnitOfWork,
		security.NewInviteTokenGenerator(),
		hasher,
		clk,
		OnboardingSettings{InviteTTL: 14 * 24 * time.Hour, BaseURL: TestBaseURL},
		logger,
	)
	require.NoError(t, err, "Failed to create OnboardingService")

	s.Consent, err = NewConsentService(dbContext.ConsentRepo, dbContext.ProfileRepo, clk, logger)
	require.NoError(t, err, "Failed to create ConsentService")

	s.Measurements, err = NewMeasurementService(dbContext.MeasurementRepo, clk, logger)
	require.NoError(t, err, "Failed to create MeasurementService")

	s.Dietary, err = NewDietaryService(dbContext.DietaryRepo, clk, logger)
	require.NoError(t, err, "Failed to create DietaryService")

	store, err := storage.NewLocalImageStore(t.TempDir(), logger)
	require.NoError(t, err)

	s.Shows, err = NewShowService(dbContext.ShowRepo, dbContext.GalleryRepo, store, clk, logger)
	require.NoError(t, err, "Failed to create ShowService")

	s.Gallery, err = NewGalleryService(dbContext.ShowRepo, dbContext.GalleryRepo, store, s.Consent, clk, logger)
	require.NoError(t, err, "Failed to create GalleryService")

	s.Chronik, err = NewChronikService(dbContext.ShowRepo, dbContext.GalleryRepo, s.Consent, markdown.NewRenderer(), logger)
	require.NoError(t, err, "Failed to create ChronikService")

	s.Holidays, err = NewHolidayService(
		dbContext.HolidayRepo,
		[]holidays.Fetcher{s.ICSFetcher, s.JSONFetcher, holidayfeed.NewBuiltinFetcher()},
		"DE",
		logger,
	)
	require.NoError(t, err, "Failed to create HolidayService")

	s.Templates, err = NewTemplateService(dbContext.TemplateRepo, dbContext.RehearsalRepo, s.Holidays, clk, loc, logger)
	require.NoError(t, err, "Failed to create TemplateService")

	renderer := pdfposter.NewRenderer(clk.Now)
	s.Rehearsals, err = NewRehearsalService(
		dbContext.RehearsalRepo,
		dbContext.AttendanceRepo,
		dbContext.ShowRepo,
		renderer,
		clk,
		PlanSettings{Organization: "Sommertheater", Location: loc},
		logger,
	)
	require.NoError(t, err, "Failed to create RehearsalService")

	s.Finance, err = NewFinanceService(dbContext.BudgetRepo, dbContext.EntryRepo, clk, TestApprovalThresholdCents, logger)
	require.NoError(t, err, "Failed to create FinanceService")

	s.Poster, err = NewPosterService(dbContext.ShowRepo, renderer, PosterSettings{Organization: "Sommertheater", City: "Lüneburg"}, logger)
	require.NoError(t, err, "Failed to create PosterService")

	return s
}

// CreateMember stores an active user and returns it with its principal
func (s *TestServices) CreateMember(t *testing.T, email string, roles ...access.Role) (*members.User, *access.Principal) {
	t.Helper()

	user := persistence.CreateTestUser(t, s.DBContext, email, roles...)
	p, err := s.Access.ResolvePrincipal(context.Background(), user.ID, user.Email, user.Roles)
	require.NoError(t, err)
	return user, p
}
