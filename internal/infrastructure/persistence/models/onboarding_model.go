package models

import (
	"strings"
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/onboarding"
)

// InviteModel is the GORM database model for onboarding invites
type InviteModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	TokenHash  string    `gorm:"not null;uniqueIndex;type:char(64)"`
	Label      string    `gorm:"type:varchar(200)"`
	Email      string    `gorm:"type:varchar(255)"`
	Roles      string    `gorm:"type:varchar(200)"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedBy  string    `gorm:"type:varchar(36)"`
	CreatedAt  time.Time `gorm:"not null"`
	RedeemedAt *time.Time
	RedeemedBy *string `gorm:"type:varchar(36)"`
	RevokedAt  *time.Time
}

// TableName specifies the table name for GORM
func (InviteModel) TableName() string {
	return "member_invites"
}

// ToDomain converts GORM model to domain entity
func (m *InviteModel) ToDomain() *onboarding.Invite {
	var roles []access.Role
	for _, r := range strings.Split(m.Roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, access.Role(r))
		}
	}
	return &onboarding.Invite{
		ID:         m.ID,
		TokenHash:  m.TokenHash,
		Label:      m.Label,
		Email:      m.Email,
		Roles:      roles,
		ExpiresAt:  m.ExpiresAt,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
		RedeemedAt: m.RedeemedAt,
		RedeemedBy: m.RedeemedBy,
		RevokedAt:  m.RevokedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *InviteModel) FromDomain(i *onboarding.Invite) {
	roles := make([]string, 0, len(i.Roles))
	for _, r := range i.Roles {
		roles = append(roles, string(r))
	}
	m.ID = i.ID
	m.TokenHash = i.TokenHash
	m.Label = i.Label
	m.Email = i.Email
	m.Roles = strings.Join(roles, ",")
	m.ExpiresAt = i.ExpiresAt
	m.CreatedBy = i.CreatedBy
	m.CreatedAt = i.CreatedAt
	m.RedeemedAt = i.RedeemedAt
	m.RedeemedBy = i.RedeemedBy
	m.RevokedAt = i.RevokedAt
}

// ProfileModel is the GORM database model for onboarding profiles
type ProfileModel struct {
	UserID                string `gorm:"primaryKey;type:varchar(36)"`
	BirthDate             string `gorm:"not null;type:varchar(10)"`
	Street                string `gorm:"type:varchar(200)"`
	PostalCode            string `gorm:"type:varchar(20)"`
	City                  string `gorm:"type:varchar(100)"`
	EmergencyContactName  string `gorm:"type:varchar(200)"`
	EmergencyContactPhone string `gorm:"type:varchar(50)"`
	Experience            string `gorm:"type:text"`
	Interests             string `gorm:"type:text"`
	IsMinor               bool   `gorm:"not null"`
	CreatedAt             time.Time
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return "member_onboarding_profiles"
}

// ToDomain converts GORM model to domain entity
func (m *ProfileModel) ToDomain() *onboarding.Profile {
	return &onboarding.Profile{
		UserID:                m.UserID,
		BirthDate:             parseDate(m.BirthDate),
		Street:                m.Street,
		PostalCode:            m.PostalCode,
		City:                  m.City,
		EmergencyContactName:  m.EmergencyContactName,
		EmergencyContactPhone: m.EmergencyContactPhone,
		Experience:            m.Experience,
		Interests:             m.Interests,
		IsMinor:               m.IsMinor,
		CreatedAt:             m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ProfileModel) FromDomain(p *onboarding.Profile) {
	m.UserID = p.UserID
	m.BirthDate = formatDate(p.BirthDate)
	m.Street = p.Street
	m.PostalCode = p.PostalCode
	m.City = p.City
	m.EmergencyContactName = p.EmergencyContactName
	m.EmergencyContactPhone = p.EmergencyContactPhone
	m.Experience = p.Experience
	m.Interests = p.Interests
	m.IsMinor = p.IsMinor
	m.CreatedAt = p.CreatedAt
}
