// Package shows holds productions, their gallery images and the public Chronik.
package shows

import (
	"errors"
	"html/template"
	"time"

	"github.com/sommertheater/portal/internal/pkg/validators"
)

var (
	ErrNotFound      = errors.New("show not found")
	ErrImageNotFound = errors.New("gallery image not found")
)

// Show is one production.
type Show struct {
	ID           string `validate:"required,uuid4"`
	Year         int    `validate:"required,min=1900,max=2200"`
	Title        string `validate:"required,notblank,max=200"`
	Subtitle     string `validate:"omitempty,max=200"`
	Synopsis     string `validate:"omitempty,max=20000"`
	Venue        string `validate:"omitempty,max=200"`
	PremiereDate *time.Time
	Director     string `validate:"omitempty,max=200"`
	IsPublic     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate for validating Show struct
func (s *Show) Validate() error {
	return validators.Struct(s)
}

// ShowInput carries the editable fields of a show.
type ShowInput struct {
	Year         int    `validate:"required,min=1900,max=2200"`
	Title        string `validate:"required,notblank,max=200"`
	Subtitle     string `validate:"omitempty,max=200"`
	Synopsis     string `validate:"omitempty,max=20000"`
	Venue        string `validate:"omitempty,max=200"`
	PremiereDate *time.Time
	Director     string `validate:"omitempty,max=200"`
	IsPublic     bool
}

// Validate for validating ShowInput struct
func (in *ShowInput) Validate() error {
	return validators.Struct(in)
}

// ApplyTo copies the input onto s.
func (in *ShowInput) ApplyTo(s *Show) {
	s.Year = in.Year
	s.Title = in.Title
	s.Subtitle = in.Subtitle
	s.Synopsis = in.Synopsis
	s.Venue = in.Venue
	s.PremiereDate = in.PremiereDate
	s.Director = in.Director
	s.IsPublic = in.IsPublic
}

// ShowQuery filters the show list.
type ShowQuery struct {
	Year       int
	PublicOnly bool
}

// GalleryImage is an uploaded picture belonging to a show.
type GalleryImage struct {
	ID            string `validate:"required,uuid4"`
	ShowID        string `validate:"required,uuid4"`
	FilePath      string `validate:"required,max=500"`
	ContentType   string `validate:"required,oneof=image/jpeg image/png image/webp image/gif"`
	Caption       string `validate:"omitempty,max=500"`
	SortOrder     int
	TaggedUserIDs []string `validate:"dive,uuid4"`
	CreatedAt     time.Time
}

// Validate for validating GalleryImage struct
func (g *GalleryImage) Validate() error {
	return validators.Struct(g)
}

// ImageUpload describes an image to add to a show's gallery.
type ImageUpload struct {
	Filename      string   `validate:"required,max=255"`
	ContentType   string   `validate:"required,oneof=image/jpeg image/png image/webp image/gif"`
	Caption       string   `validate:"omitempty,max=500"`
	SortOrder     int      `validate:"min=0"`
	TaggedUserIDs []string `validate:"dive,uuid4"`
}

// Validate for validating ImageUpload struct
func (u *ImageUpload) Validate() error {
	return validators.Struct(u)
}

// ChronikShow is a public show with its rendered synopsis and the gallery
// images cleared for publication.
type ChronikShow struct {
	Show         *Show
	SynopsisHTML template.HTML
	Images       []*GalleryImage
}

// ChronikYear groups the public shows of one season.
type ChronikYear struct {
	Year  int
	Shows []ChronikShow
}
