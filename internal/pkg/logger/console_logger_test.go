//go:build unit
// +build unit

package logger

import (
	"bytes"
	"testing"

	"github.com/sommertheater/portal/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer
	log := newConsoleLogger(&buf, config.LogLevelInfo)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := newConsoleLogger(&buf, config.LogLevelDebug).With("component", "finance")

	log.Debug("entry approved")

	assert.Contains(t, buf.String(), "component=finance")
	assert.Contains(t, buf.String(), "entry approved")
}

func TestNewConsoleLogger(t *testing.T) {
	log := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, log)

	require.NotPanics(t, func() {
		log.Info("test")
		log.Warn("test")
		log.Error("test")
	})
}
