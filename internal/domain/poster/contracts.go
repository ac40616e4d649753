package poster

import (
	"context"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
)

// Content is everything printed on a poster.
type Content struct {
	Organization string
	City         string
	Title        string
	Subtitle     string
	PremiereDate *time.Time
	Venue        string
	Director     string
	Synopsis     string
}

// Renderer draws a poster as PDF.
type Renderer interface {
	RenderPoster(c *Content) ([]byte, error)
}

// Service renders the poster for a show.
type Service interface {
	// Poster returns the PDF and a suggested file name.
	Poster(ctx context.Context, p *access.Principal, showID string) ([]byte, string, error)
}
