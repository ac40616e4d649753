package v1

import (
	"context"
	"fmt"
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
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Services bundles the application services the routes dispatch to.
type Services struct {
	Auth         auth.Service
	Members      members.Service
	Access       access.Service
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

// RouteSettings carries what the handlers need besides the services.
type RouteSettings struct {
	Cookie       CookieSettings
	Organization string
	Location     *time.Location
	Clock        clock.Clock
	// Ping reports database health for /healthz and may be nil.
	Ping   func(ctx context.Context) error
	Logger logger.Logger
}

// SetupRoutes sets up all the API routes for version 1 and the HTML pages.
func SetupRoutes(r *gin.Engine, services Services, settings RouteSettings) error {
	if settings.Clock == nil {
		settings.Clock = clock.System()
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Logger == nil {
		settings.Logger = logger.NewConsoleLogger("error")
	}

	pages, err := LoadTemplates(settings.Location)
	if err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}
	r.SetHTMLTemplate(pages)

	authHandler := NewAuthHandler(services.Auth, services.Members, settings.Cookie)
	memberHandler := NewMemberHandler(services.Members, services.Onboarding, services.Measurements, services.Dietary, services.Consent)
	accessHandler := NewAccessHandler(services.Access)
	onboardingHandler := NewOnboardingHandler(services.Onboarding, settings.Clock)
	showHandler := NewShowHandler(services.Shows, services.Gallery, services.Chronik, services.Posters)
	rehearsalHandler := NewRehearsalHandler(services.Templates, services.Rehearsals, services.Holidays, settings.Location, settings.Clock.Now)
	financeHandler := NewFinanceHandler(services.Finance, settings.Location, settings.Clock.Now)
	pageHandler := NewPageHandler(services.Chronik, services.Onboarding, settings.Organization, settings.Ping, settings.Logger)

	// Pages
	r.GET("/healthz", pageHandler.Health)
	r.GET("/chronik", pageHandler.Chronik)
	r.GET("/chronik/:year", pageHandler.ChronikYear)
	r.GET("/onboarding/:token", pageHandler.Onboarding)

	v1 := r.Group(BasePath) // lookup in version file

	// Public routes
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.GET("/onboarding/invites/:token", onboardingHandler.InspectInvite)
	v1.POST("/onboarding/invites/:token/redeem", onboardingHandler.RedeemInvite)
	v1.GET("/chronik", showHandler.Chronik)
	v1.GET("/chronik/:year", showHandler.ChronikYear)
	v1.GET("/chronik/images/:imageId", showHandler.PublicImage)
	v1.GET("/holidays", rehearsalHandler.ListHolidays)

	secured := v1.Group("", AuthRequired(services.Auth, settings.Cookie.Name))

	// Own account
	secured.GET("/me", authHandler.Me)
	secured.PUT("/me", authHandler.UpdateMe)
	secured.POST("/me/password", authHandler.ChangePassword)
	secured.GET("/me/measurements", memberHandler.ListMeasurements)
	secured.PUT("/me/measurements", memberHandler.RecordMeasurements)
	secured.DELETE("/me/measurements/:kind", memberHandler.DeleteMeasurement)
	secured.GET("/me/dietary", memberHandler.ListOwnDietary)
	secured.POST("/me/dietary", memberHandler.CreateDietary)
	secured.PUT("/me/dietary/:id", memberHandler.UpdateDietary)
	secured.DELETE("/me/dietary/:id", memberHandler.DeleteDietary)
	secured.GET("/me/consent", memberHandler.GetOwnConsent)
	secured.PUT("/me/consent", memberHandler.SubmitConsent)
	secured.DELETE("/me/consent", memberHandler.WithdrawConsent)
	secured.GET("/me/rehearsal-responses", rehearsalHandler.OwnResponses)

	// Members Routes
	secured.GET("/members", memberHandler.List)
	secured.GET("/members/:id", memberHandler.GetByID)
	secured.PUT("/members/:id/roles", memberHandler.UpdateRoles)
	secured.PUT("/members/:id/active", memberHandler.SetActive)
	secured.GET("/members/:id/profile", memberHandler.GetProfile)
	secured.GET("/members/:id/measurements", memberHandler.ListMeasurements)
	secured.PUT("/members/:id/measurements", memberHandler.RecordMeasurements)
	secured.DELETE("/members/:id/measurements/:kind", memberHandler.DeleteMeasurement)
	secured.GET("/measurements", memberHandler.ListAllMeasurements)
	secured.GET("/catering", memberHandler.CateringOverview)
	secured.GET("/consents/pending", memberHandler.ListPendingConsents)
	secured.POST("/consents/:userId/review", memberHandler.ReviewConsent)

	// Access Routes
	secured.GET("/access/matrix", accessHandler.Matrix)
	secured.POST("/access/grant", accessHandler.Grant)
	secured.POST("/access/revoke", accessHandler.Revoke)

	// Invites Routes
	secured.POST("/invites", onboardingHandler.CreateInvite)
	secured.GET("/invites", onboardingHandler.ListInvites)
	secured.DELETE("/invites/:id", onboardingHandler.RevokeInvite)

	// Shows Routes
	secured.POST("/shows", showHandler.Create)
	secured.GET("/shows", showHandler.List)
	secured.GET("/shows/:id", showHandler.GetByID)
	secured.PUT("/shows/:id", showHandler.Update)
	secured.DELETE("/shows/:id", showHandler.Delete)
	secured.GET("/shows/:id/poster.pdf", showHandler.Poster)
	secured.POST("/shows/:id/images", showHandler.UploadImage)
	secured.GET("/shows/:id/images", showHandler.ListImages)
	secured.DELETE("/shows/:id/images/:imageId", showHandler.DeleteImage)

	// Rehearsals Routes
	secured.POST("/rehearsal-templates", rehearsalHandler.CreateTemplate)
	secured.GET("/rehearsal-templates", rehearsalHandler.ListTemplates)
	secured.GET("/rehearsal-templates/:id", rehearsalHandler.GetTemplate)
	secured.PUT("/rehearsal-templates/:id", rehearsalHandler.UpdateTemplate)
	secured.DELETE("/rehearsal-templates/:id", rehearsalHandler.DeleteTemplate)
	secured.POST("/rehearsal-templates/:id/instantiate", rehearsalHandler.Instantiate)
	secured.POST("/rehearsal-templates/:id/series", rehearsalHandler.GenerateSeries)
	secured.POST("/rehearsals", rehearsalHandler.Create)
	secured.GET("/rehearsals", rehearsalHandler.List)
	secured.GET("/rehearsals/plan.pdf", rehearsalHandler.PlanPDF)
	secured.GET("/rehearsals/:id", rehearsalHandler.GetByID)
	secured.PUT("/rehearsals/:id", rehearsalHandler.Update)
	secured.DELETE("/rehearsals/:id", rehearsalHandler.Delete)
	secured.POST("/rehearsals/:id/cancel", rehearsalHandler.Cancel)
	secured.PUT("/rehearsals/:id/response", rehearsalHandler.Respond)
	secured.GET("/rehearsals/:id/attendance", rehearsalHandler.Attendance)
	secured.POST("/holidays/:year/sync", rehearsalHandler.SyncHolidays)

	// Finance Routes
	secured.POST("/finance/budgets", financeHandler.CreateBudget)
	secured.GET("/finance/budgets", financeHandler.ListBudgets)
	secured.PUT("/finance/budgets/:id", financeHandler.UpdateBudget)
	secured.DELETE("/finance/budgets/:id", financeHandler.DeleteBudget)
	secured.POST("/finance/entries", financeHandler.CreateEntry)
	secured.GET("/finance/entries", financeHandler.ListEntries)
	secured.GET("/finance/entries/export.csv", financeHandler.ExportCSV)
	secured.GET("/finance/entries/:id", financeHandler.GetEntry)
	secured.PUT("/finance/entries/:id", financeHandler.UpdateEntry)
	secured.DELETE("/finance/entries/:id", financeHandler.DeleteEntry)
	secured.POST("/finance/entries/:id/approve", financeHandler.Approve)
	secured.POST("/finance/entries/:id/reject", financeHandler.Reject)
	secured.GET("/finance/summary", financeHandler.Summary)

	return nil
}
