package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/poster"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// PosterSettings is the organization printed on every poster.
type PosterSettings struct {
	Organization string
	City         string
}

// posterService implements the poster.Service interface
type posterService struct {
	shows    shows.ShowRepository
	renderer poster.Renderer
	settings PosterSettings
	logger   logger.Logger
}

// NewPosterService creates a new instance of poster.Service
func NewPosterService(showRepo shows.ShowRepository, renderer poster.Renderer, settings PosterSettings, logger logger.Logger) (poster.Service, error) {
	return &posterService{
		shows:    showRepo,
		renderer: renderer,
		settings: settings,
		logger:   logger,
	}, nil
}

// Poster renders the show poster. Public shows are open to every member;
// unpublished ones need shows.manage.
func (s *posterService) Poster(ctx context.Context, p *access.Principal, showID string) ([]byte, string, error) {
	if p == nil {
		return nil, "", apperr.Unauthorized("Bitte melde dich an.")
	}
	show, err := s.shows.GetByID(ctx, showID)
	if err != nil {
		return nil, "", err
	}
	if !show.IsPublic {
		if err := access.Require(p, access.PermShowsManage); err != nil {
			return nil, "", err
		}
	}

	pdf, err := s.renderer.RenderPoster(&poster.Content{
		Organization: s.settings.Organization,
		City:         s.settings.City,
		Title:        show.Title,
		Subtitle:     show.Subtitle,
		PremiereDate: show.PremiereDate,
		Venue:        show.Venue,
		Director:     show.Director,
		Synopsis:     show.Synopsis,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to render poster: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Rendered poster for show %s", show.ID))
	return pdf, PosterFilename(show), nil
}

// PosterFilename derives "plakat-2026-der-sturm.pdf" from a show.
func PosterFilename(show *shows.Show) string {
	title := strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss").Replace(strings.ToLower(show.Title))
	slug := strings.Trim(nonSlug.ReplaceAllString(title, "-"), "-")
	if slug == "" {
		slug = "stueck"
	}
	return fmt.Sprintf("plakat-%d-%s.pdf", show.Year, slug)
}
