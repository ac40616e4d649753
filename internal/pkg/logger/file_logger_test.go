//go:build unit
// +build unit

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sommertheater/portal/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "portal.log")

	log := NewFileLogger(config.LogLevelInfo, logPath, 10, 3, 28)
	require.NotNil(t, log)

	log.With("invite_id", "abc").Info("invite redeemed")
	log.Warn("warn message")
	log.Error("error message")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	logOutput := string(content)
	assert.Contains(t, logOutput, "invite redeemed")
	assert.Contains(t, logOutput, `"invite_id":"abc"`)
	assert.Contains(t, logOutput, "WARN")
	assert.Contains(t, logOutput, "ERROR")
}
