package shows

import (
	"context"
	"html/template"
	"io"

	"github.com/sommertheater/portal/internal/domain/access"
)

type ShowRepository interface {
	Create(ctx context.Context, show *Show) error
	GetByID(ctx context.Context, id string) (*Show, error)
	List(ctx context.Context, query *ShowQuery) ([]*Show, error)
	Update(ctx context.Context, show *Show) error
	Delete(ctx context.Context, id string) error
}

type GalleryRepository interface {
	Create(ctx context.Context, image *GalleryImage) error
	GetByID(ctx context.Context, id string) (*GalleryImage, error)
	// ListByShows returns images ordered by sort order, then creation time.
	ListByShows(ctx context.Context, showIDs []string) ([]*GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

// ImageStore keeps gallery image files.
type ImageStore interface {
	Save(ctx context.Context, showID, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// MarkdownRenderer turns a synopsis into safe HTML.
type MarkdownRenderer interface {
	Render(source string) (template.HTML, error)
}

// ShowService manages productions.
type ShowService interface {
	Create(ctx context.Context, p *access.Principal, in *ShowInput) (*Show, error)
	GetByID(ctx context.Context, p *access.Principal, id string) (*Show, error)
	List(ctx context.Context, p *access.Principal, query *ShowQuery) ([]*Show, error)
	Update(ctx context.Context, p *access.Principal, id string, in *ShowInput) (*Show, error)
	Delete(ctx context.Context, p *access.Principal, id string) error
}

// GalleryService manages gallery images.
type GalleryService interface {
	Upload(ctx context.Context, p *access.Principal, showID string, upload *ImageUpload, content io.Reader) (*GalleryImage, error)
	List(ctx context.Context, p *access.Principal, showID string) ([]*GalleryImage, error)
	Delete(ctx context.Context, p *access.Principal, id string) error
	// OpenPublic opens an image for the public Chronik. It fails with not
	// found unless the show is public and every tagged member consented.
	OpenPublic(ctx context.Context, id string) (*GalleryImage, io.ReadCloser, error)
}

// ChronikService builds the public archive.
type ChronikService interface {
	Chronik(ctx context.Context) ([]ChronikYear, error)
	Year(ctx context.Context, year int) (*ChronikYear, error)
}
