//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
port: "9090"
database:
  type: sqlite
  dsn: ":memory:"
logger:
  log_level: debug
  log_type: console
auth:
  jwt_secret: "a-very-long-test-secret"
  token_ttl: 2h
holidays:
  region: DE-BY
organization:
  name: Sommertheater Testhausen
  time_zone: UTC
  finance_approval_threshold_cents: 5000
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitializeRestConfig_FromFile(t *testing.T) {
	cfg, err := InitializeRestConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 336*time.Hour, cfg.Auth.InviteTTL)
	assert.Equal(t, "DE-BY", cfg.Holidays.Region)
	assert.Equal(t, int64(5000), cfg.Organization.FinanceApprovalThresholdCents)
	assert.Equal(t, "./data/gallery", cfg.Storage.GalleryDir)
}

func TestInitializeRestConfig_EnvOverride(t *testing.T) {
	t.Setenv("PORTAL_PORT", "7070")
	t.Setenv("PORTAL_AUTH_JWT_SECRET", "secret-from-the-environment")

	cfg, err := InitializeRestConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "secret-from-the-environment", cfg.Auth.JWTSecret)
}

func TestInitializeRestConfig_LoggerDefaults(t *testing.T) {
	t.Setenv("PORTAL_LOGGER_LOG_TYPE", LogTypeFile)
	t.Setenv(LogLevelEnv, "error")

	cfg, err := InitializeRestConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, LogLevelError, cfg.Logger.LogLevel)
	assert.Equal(t, LogTypeFile, cfg.Logger.LogType)
	assert.Equal(t, DefaultLogFilePath, cfg.Logger.FilePath)
	assert.Equal(t, DefaultLogMaxBackups, cfg.Logger.MaxBackups)
}

func TestInitializeRestConfig_MissingSecret(t *testing.T) {
	_, err := InitializeRestConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
}

func TestOrganizationSettings_Location(t *testing.T) {
	s := OrganizationSettings{TimeZone: "UTC"}
	loc, err := s.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	s.TimeZone = "Mars/Olympus"
	_, err = s.Location()
	assert.Error(t, err)
}
