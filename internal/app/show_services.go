package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/apperr"
	"github.com/sommertheater/portal/internal/pkg/clock"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

// showService implements the shows.ShowService interface
type showService struct {
	shows   shows.ShowRepository
	gallery shows.GalleryRepository
	store   shows.ImageStore
	clock   clock.Clock
	logger  logger.Logger
}

// NewShowService creates a new instance of shows.ShowService
func NewShowService(
	showRepo shows.ShowRepository,
	galleryRepo shows.GalleryRepository,
	store shows.ImageStore,
	clk clock.Clock,
	logger logger.Logger,
) (shows.ShowService, error) {
	return &showService{
		shows:   showRepo,
		gallery: galleryRepo,
		store:   store,
		clock:   clk,
		logger:  logger,
	}, nil
}

func (s *showService) Create(ctx context.Context, p *access.Principal, in *shows.ShowInput) (*shows.Show, error) {
	if err := access.Require(p, access.PermShowsManage); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe die Angaben zum Stück.", err)
	}

	now := s.clock.Now().UTC()
	show := &shows.Show{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	in.ApplyTo(show)
	if err := s.shows.Create(ctx, show); err != nil {
		return nil, fmt.Errorf("failed to create show: %w", err)
	}
	return show, nil
}

func (s *showService) GetByID(ctx context.Context, p *access.Principal, id string) (*shows.Show, error) {
	if p == nil {
		return nil, apperr.Unauthorized("Bitte melde dich an.")
	}
	return s.shows.GetByID(ctx, id)
}

func (s *showService) List(ctx context.Context, p *access.Principal, query *shows.ShowQuery) ([]*shows.Show, error) {
	if p == nil {
		return nil, apperr.Unauthorized("Bitte melde dich an.")
	}
	return s.shows.List(ctx, query)
}

func (s *showService) Update(ctx context.Context, p *access.Principal, id string, in *shows.ShowInput) (*shows.Show, error) {
	if err := access.Require(p, access.PermShowsManage); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.Validation("Bitte prüfe die Angaben zum Stück.", err)
	}

	show, err := s.shows.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ApplyTo(show)
	show.UpdatedAt = s.clock.Now().UTC()
	if err := s.shows.Update(ctx, show); err != nil {
		return nil, fmt.Errorf("failed to update show: %w", err)
	}
	return show, nil
}

// Delete removes the show together with its gallery files.
func (s *showService) Delete(ctx context.Context, p *access.Principal, id string) error {
	if err := access.Require(p, access.PermShowsManage); err != nil {
		return err
	}
	if _, err := s.shows.GetByID(ctx, id); err != nil {
		return err
	}

	images, err := s.gallery.ListByShows(ctx, []string{id})
	if err != nil {
		return fmt.Errorf("failed to list gallery images: %w", err)
	}
	for _, img := range images {
		if err := s.gallery.Delete(ctx, img.ID); err != nil {
			return fmt.Errorf("failed to delete gallery image %s: %w", img.ID, err)
		}
		if err := s.store.Delete(ctx, img.FilePath); err != nil {
			s.logger.Warn(fmt.Sprintf("Orphaned image file %s: %v", img.FilePath, err))
		}
	}

	if err := s.shows.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete show: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Deleted show %s with %d images", id, len(images)))
	return nil
}

// galleryService implements the shows.GalleryService interface
type galleryService struct {
	shows    shows.ShowRepository
	gallery  shows.GalleryRepository
	store    shows.ImageStore
	consents consent.Service
	clock    clock.Clock
	logger   logger.Logger
}

// NewGalleryService creates a new instance of shows.GalleryService
func NewGalleryService(
	showRepo shows.ShowRepository,
	galleryRepo shows.GalleryRepository,
	store shows.ImageStore,
	consents consent.Service,
	clk clock.Clock,
	logger logger.Logger,
) (shows.GalleryService, error) {
	return &galleryService{
		shows:    showRepo,
		gallery:  galleryRepo,
		store:    store,
		consents: consents,
		clock:    clk,
		logger:   logger,
	}, nil
}

func (s *galleryService) Upload(ctx context.Context, p *access.Principal, showID string, upload *shows.ImageUpload, content io.Reader) (*shows.GalleryImage, error) {
	if err := access.Require(p, access.PermChronikManage); err != nil {
		return nil, err
	}
	if err := upload.Validate(); err != nil {
		return nil, apperr.Validation("Ungültiges Bild.", err)
	}
	if _, err := s.shows.GetByID(ctx, showID); err != nil {
		return nil, err
	}

	path, err := s.store.Save(ctx, showID, filepath.Base(upload.Filename), content)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	img := &shows.GalleryImage{
		ID:            uuid.NewString(),
		ShowID:        showID,
		FilePath:      path,
		ContentType:   upload.ContentType,
		Caption:       upload.Caption,
		SortOrder:     upload.SortOrder,
		TaggedUserIDs: upload.TaggedUserIDs,
		CreatedAt:     s.clock.Now().UTC(),
	}
	if err := s.gallery.Create(ctx, img); err != nil {
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			s.logger.Warn(fmt.Sprintf("Orphaned image file %s: %v", path, delErr))
		}
		return nil, fmt.Errorf("failed to create gallery image: %w", err)
	}
	return img, nil
}

func (s *galleryService) List(ctx context.Context, p *access.Principal, showID string) ([]*shows.GalleryImage, error) {
	if err := access.Require(p, access.PermChronikManage); err != nil {
		return nil, err
	}
	return s.gallery.ListByShows(ctx, []string{showID})
}

func (s *galleryService) Delete(ctx context.Context, p *access.Principal, id string) error {
	if err := access.Require(p, access.PermChronikManage); err != nil {
		return err
	}
	img, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gallery.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete gallery image: %w", err)
	}
	if err := s.store.Delete(ctx, img.FilePath); err != nil {
		s.logger.Warn(fmt.Sprintf("Orphaned image file %s: %v", img.FilePath, err))
	}
	return nil
}

func (s *galleryService) OpenPublic(ctx context.Context, id string) (*shows.GalleryImage, io.ReadCloser, error) {
	img, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	show, err := s.shows.GetByID(ctx, img.ShowID)
	if err != nil {
		if errors.Is(err, shows.ErrNotFound) {
			return nil, nil, shows.ErrImageNotFound
		}
		return nil, nil, err
	}
	if !show.IsPublic {
		return nil, nil, shows.ErrImageNotFound
	}

	visible, err := publishable(ctx, s.consents, []*shows.GalleryImage{img})
	if err != nil {
		return nil, nil, err
	}
	if len(visible) == 0 {
		return nil, nil, shows.ErrImageNotFound
	}

	rc, err := s.store.Open(ctx, img.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	return img, rc, nil
}

// publishable keeps the images whose tagged members all allow publication.
func publishable(ctx context.Context, consents consent.Service, images []*shows.GalleryImage) ([]*shows.GalleryImage, error) {
	var tagged []string
	seen := make(map[string]bool)
	for _, img := range images {
		for _, uid := range img.TaggedUserIDs {
			if !seen[uid] {
				seen[uid] = true
				tagged = append(tagged, uid)
			}
		}
	}

	allowed, err := consents.PublishableUsers(ctx, tagged)
	if err != nil {
		return nil, err
	}

	out := make([]*shows.GalleryImage, 0, len(images))
	for _, img := range images {
		ok := true
		for _, uid := range img.TaggedUserIDs {
			if !allowed[uid] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, img)
		}
	}
	return out, nil
}

// chronikService implements the shows.ChronikService interface
type chronikService struct {
	shows    shows.ShowRepository
	gallery  shows.GalleryRepository
	consents consent.Service
	markdown shows.MarkdownRenderer
	logger   logger.Logger
}

// NewChronikService creates a new instance of shows.ChronikService
func NewChronikService(
	showRepo shows.ShowRepository,
	galleryRepo shows.GalleryRepository,
	consents consent.Service,
	markdown shows.MarkdownRenderer,
	logger logger.Logger,
) (shows.ChronikService, error) {
	return &chronikService{
		shows:    showRepo,
		gallery:  galleryRepo,
		consents: consents,
		markdown: markdown,
		logger:   logger,
	}, nil
}

// Chronik returns all public shows grouped by year, newest year first.
func (s *chronikService) Chronik(ctx context.Context) ([]shows.ChronikYear, error) {
	return s.build(ctx, &shows.ShowQuery{PublicOnly: true})
}

func (s *chronikService) Year(ctx context.Context, year int) (*shows.ChronikYear, error) {
	years, err := s.build(ctx, &shows.ShowQuery{PublicOnly: true, Year: year})
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, apperr.NotFound("CHRONIK_YEAR_NOT_FOUND", fmt.Sprintf("Für %d gibt es keine Chronik.", year))
	}
	return &years[0], nil
}

func (s *chronikService) build(ctx context.Context, query *shows.ShowQuery) ([]shows.ChronikYear, error) {
	list, err := s.shows.List(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []shows.ChronikYear{}, nil
	}

	ids := make([]string, len(list))
	for i, show := range list {
		ids[i] = show.ID
	}
	images, err := s.gallery.ListByShows(ctx, ids)
	if err != nil {
		return nil, err
	}
	images, err = publishable(ctx, s.consents, images)
	if err != nil {
		return nil, err
	}
	byShow := make(map[string][]*shows.GalleryImage)
	for _, img := range images {
		byShow[img.ShowID] = append(byShow[img.ShowID], img)
	}

	var years []shows.ChronikYear
	for _, show := range list {
		html, err := s.markdown.Render(show.Synopsis)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("Synopsis of show %s not rendered: %v", show.ID, err))
		}
		entry := shows.ChronikShow{Show: show, SynopsisHTML: html, Images: byShow[show.ID]}

		if n := len(years); n > 0 && years[n-1].Year == show.Year {
			years[n-1].Shows = append(years[n-1].Shows, entry)
			continue
		}
		years = append(years, shows.ChronikYear{Year: show.Year, Shows: []shows.ChronikShow{entry}})
	}
	return years, nil
}
