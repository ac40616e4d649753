package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// StorageSettings points at the local directories for uploaded files
type StorageSettings struct {
	GalleryDir string `mapstructure:"gallery_dir" validate:"required"`
}

// OrganizationSettings holds club-wide business settings
type OrganizationSettings struct {
	Name                          string `mapstructure:"name" validate:"required"`
	City                          string `mapstructure:"city"`
	TimeZone                      string `mapstructure:"time_zone" validate:"required"`
	FinanceApprovalThresholdCents int64  `mapstructure:"finance_approval_threshold_cents" validate:"min=0"`
}

// Location resolves the configured time zone
func (s *OrganizationSettings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", s.TimeZone, err)
	}
	return loc, nil
}

// RestConfig is the complete configuration of the REST API process
type RestConfig struct {
	Port         string               `mapstructure:"port" validate:"required"`
	Database     DatabaseSettings     `mapstructure:"database"`
	Logger       LoggerSettings       `mapstructure:"logger"`
	Auth         AuthSettings         `mapstructure:"auth"`
	Holidays     HolidaySettings      `mapstructure:"holidays"`
	Storage      StorageSettings      `mapstructure:"storage"`
	Organization OrganizationSettings `mapstructure:"organization"`
}

// Validate validates every section of the configuration
func (c *RestConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}

	sections := []interface{ Validate() error }{
		&c.Database, &c.Logger, &c.Auth, &c.Holidays,
	}
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "portal.db")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("auth.invite_ttl", "336h")
	v.SetDefault("auth.cookie_name", "portal_session")
	v.SetDefault("auth.base_url", "http://localhost:8080")
	v.SetDefault("holidays.region", "DE")
	v.SetDefault("holidays.timeout", "10s")
	v.SetDefault("holidays.json_path", "$[*]")
	v.SetDefault("storage.gallery_dir", "./data/gallery")
	v.SetDefault("organization.name", "Sommertheater")
	v.SetDefault("organization.time_zone", "Europe/Berlin")
	v.SetDefault("organization.finance_approval_threshold_cents", 10000)
}

// InitializeRestConfig reads the YAML file at path, applies PORTAL_* environment
// overrides and validates the result. A missing file is tolerated when the
// environment provides everything required.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// AutomaticEnv only applies to keys viper already knows about
	for _, key := range []string{"auth.jwt_secret", "holidays.ics_url", "holidays.json_url", "database.name", "logger.file_path"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.BindEnv("logger.log_level", "PORTAL_LOGGER_LOG_LEVEL", LogLevelEnv); err != nil {
		return nil, fmt.Errorf("failed to bind env for logger.log_level: %w", err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Logger = cfg.Logger.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
