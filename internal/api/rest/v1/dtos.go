package v1

import (
	"time"

	"github.com/sommertheater/portal/internal/domain/access"
	"github.com/sommertheater/portal/internal/domain/auth"
	"github.com/sommertheater/portal/internal/domain/consent"
	"github.com/sommertheater/portal/internal/domain/dietary"
	"github.com/sommertheater/portal/internal/domain/measurements"
	"github.com/sommertheater/portal/internal/domain/members"
	"github.com/sommertheater/portal/internal/domain/onboarding"
	"github.com/sommertheater/portal/internal/pkg/validators"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func rolesToStrings(roles []access.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func stringsToRoles(in []string) []access.Role {
	out := make([]access.Role, len(in))
	for i, r := range in {
		out[i] = access.Role(r)
	}
	return out
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate for validating LoginRequest struct
func (r *LoginRequest) Validate() error {
	return validators.Struct(r)
}

// ChangePasswordRequest is the body of PUT /me/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// Validate for validating ChangePasswordRequest struct
func (r *ChangePasswordRequest) Validate() error {
	return validators.Struct(r)
}

// MemberResponse is the directory view of a user
type MemberResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func toMemberResponse(u *members.User) MemberResponse {
	return MemberResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Active:    u.Active,
		Roles:     rolesToStrings(u.Roles),
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse carries the session token
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      MemberResponse `json:"user"`
}

func toLoginResponse(s *auth.Session) LoginResponse {
	return LoginResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: toMemberResponse(s.User)}
}

// MeResponse is the caller's own account with effective permissions
type MeResponse struct {
	MemberResponse
	Permissions []string `json:"permissions"`
}

// UpdateProfileRequest is the body of PUT /me
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UpdateRolesRequest is the body of PUT /members/:id/roles
type UpdateRolesRequest struct {
	Roles []string `json:"roles"`
}

// SetActiveRequest is the body of PUT /members/:id/active
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Validate for validating SetActiveRequest struct
func (r *SetActiveRequest) Validate() error {
	return validators.Struct(r)
}

// CreateInviteRequest is the body of POST /onboarding/invites
type CreateInviteRequest struct {
	Label          string   `json:"label"`
	Email          string   `json:"email"`
	Roles          []string `json:"roles"`
	ExpiresInHours int      `json:"expires_in_hours" validate:"min=0,max=8760"`
}

// Validate for validating CreateInviteRequest struct
func (r *CreateInviteRequest) Validate() error {
	return validators.Struct(r)
}

func (r *CreateInviteRequest) toDomain() *onboarding.CreateInviteRequest {
	return &onboarding.CreateInviteRequest{
		Label:     r.Label,
		Email:     r.Email,
		Roles:     stringsToRoles(r.Roles),
		ExpiresIn: time.Duration(r.ExpiresInHours) * time.Hour,
	}
}

// InviteResponse is the management view of an invite
type InviteResponse struct {
	ID         string     `json:"id"`
	Label      string     `json:"label,omitempty"`
	Email      string     `json:"email,omitempty"`
	Roles      []string   `json:"roles"`
	Status     string     `json:"status"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedBy  string     `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
	RedeemedBy *string    `json:"redeemed_by,omitempty"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

func toInviteResponse(i *onboarding.Invite, now time.Time) InviteResponse {
	return InviteResponse{
		ID:         i.ID,
		Label:      i.Label,
		Email:      i.Email,
		Roles:      rolesToStrings(i.RolesWithMember()),
		Status:     string(i.Status(now)),
		ExpiresAt:  i.ExpiresAt,
		CreatedBy:  i.CreatedBy,
		CreatedAt:  i.CreatedAt,
		RedeemedAt: i.RedeemedAt,
		RedeemedBy: i.RedeemedBy,
		RevokedAt:  i.RevokedAt,
	}
}

// CreatedInviteResponse holds the raw token; it is shown exactly once
type CreatedInviteResponse struct {
	Invite InviteResponse `json:"invite"`
	Token  string         `json:"token"`
	Link   string         `json:"link"`
}

// InviteInfoResponse is the public view of an invite
type InviteInfoResponse struct {
	Status    string    `json:"status"`
	Label     string    `json:"label,omitempty"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toInviteInfoResponse(info *onboarding.InviteInfo) InviteInfoResponse {
	return InviteInfoResponse{
		Status:    string(info.Status),
		Label:     info.Label,
		Email:     info.Email,
		ExpiresAt: info.ExpiresAt,
	}
}

// DietaryRequest is one dietary restriction in a request
type DietaryRequest struct {
	Label    string `json:"label" form:"label"`
	Severity string `json:"severity" form:"severity"`
	Notes    string `json:"notes" form:"notes"`
}

func (r DietaryRequest) toDomain() dietary.Input {
	return dietary.Input{Label: r.Label, Severity: dietary.Severity(r.Severity), Notes: r.Notes}
}

// RedeemInviteRequest is the onboarding form submission
type RedeemInviteRequest struct {
	Email                 string           `json:"email"`
	Password              string           `json:"password"`
	FirstName             string           `json:"first_name"`
	LastName              string           `json:"last_name"`
	Phone                 string           `json:"phone"`
	BirthDate             string           `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Street                string           `json:"street"`
	PostalCode            string           `json:"postal_code"`
	City                  string           `json:"city"`
	EmergencyContactName  string           `json:"emergency_contact_name"`
	EmergencyContactPhone string           `json:"emergency_contact_phone"`
	Experience            string           `json:"experience"`
	Interests             string           `json:"interests"`
	Dietary               []DietaryRequest `json:"dietary"`
	PhotoConsent          bool             `json:"photo_consent"`
	GuardianName          string           `json:"guardian_name"`
}

// Validate for validating RedeemInviteRequest struct
func (r *RedeemInviteRequest) Validate() error {
	return validators.Struct(r)
}

func (r *RedeemInviteRequest) toDomain() (*onboarding.RedeemRequest, error) {
	birth, err := time.Parse(time.DateOnly, r.BirthDate)
	if err != nil {
		return nil, err
	}
	diet := make([]dietary.Input, len(r.Dietary))
	for i, d := range r.Dietary {
		diet[i] = d.toDomain()
	}
	return &onboarding.RedeemRequest{
		Email:                 r.Email,
		Password:              r.Password,
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		Phone:                 r.Phone,
		BirthDate:             birth,
		Street:                r.Street,
		PostalCode:            r.PostalCode,
		City:                  r.City,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		Experience:            r.Experience,
		Interests:             r.Interests,
		Dietary:               diet,
		PhotoConsent:          r.PhotoConsent,
		GuardianName:          r.GuardianName,
	}, nil
}

// ProfileResponse is the onboarding profile of a member
type ProfileResponse struct {
	UserID                string    `json:"user_id"`
	BirthDate             string    `json:"birth_date"`
	Street                string    `json:"street,omitempty"`
	PostalCode            string    `json:"postal_code,omitempty"`
	City                  string    `json:"city,omitempty"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
	Experience            string    `json:"experience,omitempty"`
	Interests             string    `json:"interests,omitempty"`
	IsMinor               bool      `json:"is_minor"`
	CreatedAt             time.Time `json:"created_at"`
}

func toProfileResponse(p *onboarding.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:                p.UserID,
		BirthDate:             formatDate(p.BirthDate),
		Street:                p.Street,
		PostalCode:            p.PostalCode,
		City:                  p.City,
		EmergencyContactName:  p.EmergencyContactName,
		EmergencyContactPhone: p.EmergencyContactPhone,
		Experience:            p.Experience,
		Interests:             p.Interests,
		IsMinor:               p.IsMinor,
		CreatedAt:             p.CreatedAt,
	}
}

// ConsentRequest is the body of PUT /me/photo-consent
type ConsentRequest struct {
	Consents     bool   `json:"consents"`
	GuardianName string `json:"guardian_name"`
	Notes        string `json:"notes"`
}

// ReviewConsentRequest is the body of POST /photo-consents/:userId/review
type ReviewConsentRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// ConsentResponse is a member's photo consent
type ConsentResponse struct {
	UserID       string     `json:"user_id"`
	Consents     bool       `json:"consents"`
	Status       string     `json:"status"`
	GuardianName string     `json:"guardian_name,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	ReviewNote   string     `json:"review_note,omitempty"`
	ReviewedBy   *string    `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toConsentResponse(c *consent.PhotoConsent) ConsentResponse {
	return ConsentResponse{
		UserID:       c.UserID,
		Consents:     c.Consents,
		Status:       string(c.Status),
		GuardianName: c.GuardianName,
		Notes:        c.Notes,
		ReviewNote:   c.ReviewNote,
		ReviewedBy:   c.ReviewedBy,
		ReviewedAt:   c.ReviewedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// RecordMeasurementsRequest is the body of PUT /members/:id/measurements
type RecordMeasurementsRequest struct {
	Measurements []measurements.Input `json:"measurements"`
}

// MeasurementResponse is one stored measurement
type MeasurementResponse struct {
	UserID     string    `json:"user_id"`
	Kind       string    `json:"kind"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Notes      string    `json:"notes,omitempty"`
	MeasuredBy string    `json:"measured_by,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toMeasurementResponses(list []*measurements.Measurement) []MeasurementResponse {
	out := make([]MeasurementResponse, len(list))
	for i, m := range list {
		out[i] = MeasurementResponse{
			UserID:     m.UserID,
			Kind:       string(m.Kind),
			Value:      m.Value,
			Unit:       string(m.Unit),
			Notes:      m.Notes,
			MeasuredBy: m.MeasuredBy,
			UpdatedAt:  m.UpdatedAt,
		}
	}
	return out
}

// DietaryResponse is one of the caller's dietary restrictions
type DietaryResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Severity  string    `json:"severity"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDietaryResponse(r *dietary.Restriction) DietaryResponse {
	return DietaryResponse{ID: r.ID, Label: r.Label, Severity: string(r.Severity), Notes: r.Notes, UpdatedAt: r.UpdatedAt}
}

// CateringItemResponse aggregates restrictions for the catering team
type CateringItemResponse struct {
	Label    string   `json:"label"`
	Count    int      `json:"count"`
	Severity string   `json:"severity"`
	Notes    []string `json:"notes"`
}

// PermissionChangeRequest grants or revokes one permission of a role
type PermissionChangeRequest struct {
	Role       string `json:"role" validate:"required"`
	Permission string `json:"permission" validate:"required"`
}

// Validate for validating PermissionChangeRequest struct
func (r *PermissionChangeRequest) Validate() error {
	return validators.Struct(r)
}
