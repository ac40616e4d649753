package testutil

import (
	"os"
	"testing"

	"github.com/sommertheater/portal/internal/pkg/config"
	"github.com/sommertheater/portal/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// SetupTestLogger returns the shared console logger for tests. It only logs
// errors unless PORTAL_LOG_LEVEL asks for more; the first call in a test
// binary fixes the level.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	settings := TestLoggerSettings()
	err := logger.InitLogger(&settings)
	require.NoError(t, err)

	log, err := logger.GetLogger()
	require.NoError(t, err)

	return log
}

// TestLoggerSettings are the console settings SetupTestLogger uses.
func TestLoggerSettings() config.LoggerSettings {
	level := config.LogLevelError
	if v := os.Getenv(config.LogLevelEnv); v != "" {
		level = v
	}
	return config.LoggerSettings{LogLevel: level, LogType: config.LogTypeConsole}.WithDefaults()
}
