package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// HolidaySettings configures the holiday feed sources. Both URLs are optional;
// the built-in calendar is always used as the last resort.
type HolidaySettings struct {
	ICSURL   string        `mapstructure:"ics_url" validate:"omitempty,url"`
	JSONURL  string        `mapstructure:"json_url" validate:"omitempty"`
	JSONPath string        `mapstructure:"json_path"`
	Region   string        `mapstructure:"region" validate:"required,max=16"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Validate checks that all fields in HolidaySettings are valid
func (s *HolidaySettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for HolidaySettings: %w", err)
	}
	if s.JSONURL != "" && s.JSONPath == "" {
		return fmt.Errorf("json path is required when a json holiday feed is configured")
	}
	return nil
}
