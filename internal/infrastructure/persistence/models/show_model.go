package models

import (
	"time"

	"github.com/sommertheater/portal/internal/domain/shows"
)

// ShowModel is the GORM database model for productions
type ShowModel struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)"`
	Year         int     `gorm:"not null;index"`
	Title        string  `gorm:"not null;type:varchar(200)"`
	Subtitle     string  `gorm:"type:varchar(200)"`
	Synopsis     string  `gorm:"type:text"`
	Venue        string  `gorm:"type:varchar(200)"`
	PremiereDate *string `gorm:"type:varchar(10)"`
	Director     string  `gorm:"type:varchar(200)"`
	IsPublic     bool    `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (ShowModel) TableName() string {
	return "shows"
}

// ToDomain converts GORM model to domain entity
func (m *ShowModel) ToDomain() *shows.Show {
	s := &shows.Show{
		ID:        m.ID,
		Year:      m.Year,
		Title:     m.Title,
		Subtitle:  m.Subtitle,
		Synopsis:  m.Synopsis,
		Venue:     m.Venue,
		Director:  m.Director,
		IsPublic:  m.IsPublic,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.PremiereDate != nil {
		d := parseDate(*m.PremiereDate)
		s.PremiereDate = &d
	}
	return s
}

// FromDomain converts domain entity to GORM model
func (m *ShowModel) FromDomain(s *shows.Show) {
	m.ID = s.ID
	m.Year = s.Year
	m.Title = s.Title
	m.Subtitle = s.Subtitle
	m.Synopsis = s.Synopsis
	m.Venue = s.Venue
	m.Director = s.Director
	m.IsPublic = s.IsPublic
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
	m.PremiereDate = nil
	if s.PremiereDate != nil {
		d := formatDate(*s.PremiereDate)
		m.PremiereDate = &d
	}
}

// GalleryImageModel is the GORM database model for gallery images
type GalleryImageModel struct {
	ID          string                 `gorm:"primaryKey;type:varchar(36)"`
	ShowID      string                 `gorm:"not null;index;type:varchar(36)"`
	FilePath    string                 `gorm:"not null;type:varchar(500)"`
	ContentType string                 `gorm:"not null;type:varchar(50)"`
	Caption     string                 `gorm:"type:varchar(500)"`
	SortOrder   int                    `gorm:"not null;default:0"`
	Tags        []GalleryImageTagModel `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (GalleryImageModel) TableName() string {
	return "gallery_images"
}

// GalleryImageTagModel links a member shown in a gallery image
type GalleryImageTagModel struct {
	ImageID string `gorm:"primaryKey;type:varchar(36)"`
	UserID  string `gorm:"primaryKey;index;type:varchar(36)"`
}

// TableName specifies the table name for GORM
func (GalleryImageTagModel) TableName() string {
	return "gallery_image_tags"
}

// ToDomain converts GORM model to domain entity
func (m *GalleryImageModel) ToDomain() *shows.GalleryImage {
	tagged := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		tagged = append(tagged, t.UserID)
	}
	return &shows.GalleryImage{
		ID:            m.ID,
		ShowID:        m.ShowID,
		FilePath:      m.FilePath,
		ContentType:   m.ContentType,
		Caption:       m.Caption,
		SortOrder:     m.SortOrder,
		TaggedUserIDs: tagged,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *GalleryImageModel) FromDomain(g *shows.GalleryImage) {
	m.ID = g.ID
	m.ShowID = g.ShowID
	m.FilePath = g.FilePath
	m.ContentType = g.ContentType
	m.Caption = g.Caption
	m.SortOrder = g.SortOrder
	m.CreatedAt = g.CreatedAt
	m.Tags = make([]GalleryImageTagModel, 0, len(g.TaggedUserIDs))
	seen := make(map[string]bool, len(g.TaggedUserIDs))
	for _, id := range g.TaggedUserIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		m.Tags = append(m.Tags, GalleryImageTagModel{ImageID: g.ID, UserID: id})
	}
}
