package v1

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// LoadTemplates parses the embedded HTML pages.
func LoadTemplates(loc *time.Location) (*template.Template, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"imageURL": PublicImageURL,
		"germanDate": func(t time.Time) string {
			return strconv.Itoa(t.Day()) + ". " + germanMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
		},
		"germanDateTime": func(t time.Time) string {
			return t.In(loc).Format("02.01.2006, 15:04") + " Uhr"
		},
	}
	return template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// PageHandler serves the server-rendered pages and the health check
type PageHandler interface {
	Chronik(ctx *gin.Context)
	ChronikYear(ctx *gin.Context)
	Onboarding(ctx *gin.Context)
	Health(ctx *gin.Context)
}

type pageHandler struct {
	chronikService    shows.ChronikService
	onboardingService onboarding.Service
	organization      string
	ping              func(ctx context.Context) error
	logger            logger.Logger
}

// NewPageHandler creates a new PageHandler. ping reports database health and
// may be nil.
func NewPageHandler(chronikService shows.ChronikService, onboardingService onboarding.Service, organization string, ping func(ctx context.Context) error, logger logger.Logger) PageHandler {
	return &pageHandler{
		chronikService:    chronikService,
		onboardingService: onboardingService,
		organization:      organization,
		ping:              ping,
		logger:            logger,
	}
}

type chronikPage struct {
	Title        string
	Organization string
	Years        []shows.ChronikYear
}

type onboardingPage struct {
	Title        string
	Organization string
	Status       string
	Label        string
	Email        string
	ExpiresAt    time.Time
	Action       string
}

func (handler *pageHandler) Chronik(ctx *gin.Context) {
	years, err := handler.chronikService.Chronik(ctx.Request.Context())
	if err != nil {
		handler.errorPage(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "chronik.html", chronikPage{
		Title:        "Chronik",
		Organization: handler.organization,
		Years:        years,
	})
}

func (handler *pageHandler) ChronikYear(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		ctx.String(http.StatusBadRequest, "Ungültiges Jahr.")
		return
	}
	y, err := handler.chronikService.Year(ctx.Request.Context(), year)
	if err != nil {
		handler.errorPage(ctx, err)
		return
	}
	page := chronikPage{
		Title:        "Chronik " + strconv.Itoa(year),
		Organization: handler.organization,
	}
	if len(y.Shows) > 0 {
		page.Years = []shows.ChronikYear{*y}
	}
	ctx.HTML(http.StatusOK, "chronik.html", page)
}

// Onboarding renders the sign-up form for a valid invite and an explanation
// for every other state. Unknown tokens get a 404 with the same page.
func (handler *pageHandler) Onboarding(ctx *gin.Context) {
	token := ctx.Param("token")
	page := onboardingPage{
		Title:        "Willkommen im Ensemble",
		Organization: handler.organization,
		Action:       BasePath + "/onboarding/invites/" + token + "/redeem",
	}

	info, err := handler.onboardingService.Inspect(ctx.Request.Context(), token)
	if err != nil {
		status, _ := toErrorResponse(err)
		if status != http.StatusNotFound {
			handler.errorPage(ctx, err)
			return
		}
		page.Status = "unknown"
		ctx.HTML(http.StatusNotFound, "onboarding.html", page)
		return
	}

	page.Status = string(info.Status)
	page.Label = info.Label
	page.Email = info.Email
	page.ExpiresAt = info.ExpiresAt
	ctx.HTML(http.StatusOK, "onboarding.html", page)
}

func (handler *pageHandler) Health(ctx *gin.Context) {
	if handler.ping != nil {
		if err := handler.ping(ctx.Request.Context()); err != nil {
			handler.logger.Error("Health check failed: ", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (handler *pageHandler) errorPage(ctx *gin.Context, err error) {
	status, body := toErrorResponse(err)
	if status >= http.StatusInternalServerError {
		handler.logger.Error("Failed to render page ", ctx.Request.URL.Path, ": ", err)
	}
	ctx.String(status, body.Message)
}
