//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *LoggerSettings
		expectedError bool
	}{
		{
			name:     "console logger",
			settings: &LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole},
		},
		{
			name: "file logger with rotation",
			settings: &LoggerSettings{
				LogLevel:   LogLevelDebug,
				LogType:    LogTypeFile,
				FilePath:   "/var/log/portal/portal.log",
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			},
		},
		{
			name:          "missing log level",
			settings:      &LoggerSettings{LogType: LogTypeConsole},
			expectedError: true,
		},
		{
			name:          "invalid log type",
			settings:      &LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"},
			expectedError: true,
		},
		{
			name: "file logger without path",
			settings: &LoggerSettings{
				LogLevel:   LogLevelInfo,
				LogType:    LogTypeFile,
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			},
			expectedError: true,
		},
		{
			name: "file logger max age out of range",
			settings: &LoggerSettings{
				LogLevel:   LogLevelInfo,
				LogType:    LogTypeFile,
				FilePath:   "/var/log/portal/portal.log",
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     400,
			},
			expectedError: true,
		},
		{
			name: "console logger ignores rotation settings",
			settings: &LoggerSettings{
				LogLevel: LogLevelWarning,
				LogType:  LogTypeConsole,
				MaxSize:  1000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoggerSettings_WithDefaults(t *testing.T) {
	file := LoggerSettings{LogLevel: " Warn ", LogType: LogTypeFile}.WithDefaults()
	assert.Equal(t, LogLevelWarning, file.LogLevel)
	assert.Equal(t, DefaultLogFilePath, file.FilePath)
	assert.Equal(t, DefaultLogMaxSize, file.MaxSize)
	assert.Equal(t, DefaultLogMaxBackups, file.MaxBackups)
	assert.Equal(t, DefaultLogMaxAge, file.MaxAge)
	assert.NoError(t, file.Validate())

	custom := LoggerSettings{
		LogLevel: LogLevelInfo,
		LogType:  LogTypeFile,
		FilePath: "/var/log/portal/portal.log",
		MaxAge:   7,
	}.WithDefaults()
	assert.Equal(t, "/var/log/portal/portal.log", custom.FilePath)
	assert.Equal(t, 7, custom.MaxAge)

	console := LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole}.WithDefaults()
	assert.Empty(t, console.FilePath)
	assert.Zero(t, console.MaxSize)
}
