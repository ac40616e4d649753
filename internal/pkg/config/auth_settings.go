package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AuthSettings configures session tokens and invite links
type AuthSettings struct {
	JWTSecret  string        `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTL   time.Duration `mapstructure:"token_ttl" validate:"required"`
	InviteTTL  time.Duration `mapstructure:"invite_ttl" validate:"required"`
	CookieName string        `mapstructure:"cookie_name" validate:"required"`
	// BaseURL is used to build absolute onboarding links.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	if s.TokenTTL < time.Minute {
		return fmt.Errorf("token ttl must be at least one minute")
	}
	return nil
}
