//go:build unit
// +build unit

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsa_key_service/internal/pkg/config"
)

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newTextLogger(&buf, config.LogLevelDebug)

	log.Debug("debug line")
	log.Info("generated key (", 1024, " bits)")
	log.Warn("warn line")
	log.Error("error line")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `"generated key (1024 bits)"`)
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestTextLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newTextLogger(&buf, config.LogLevelWarning)

	log.Info("below threshold")
	log.Warn("at threshold")

	out := buf.String()
	assert.NotContains(t, out, "below threshold")
	assert.Contains(t, out, "at threshold")
}

func TestFileLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "service.log")
	log := NewFileLogger(&config.LoggerSettings{
		LogLevel:   config.LogLevelInfo,
		LogType:    config.LogTypeFile,
		FilePath:   logPath,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})

	log.Info("imported parameters")
	log.Warn("blinding disabled")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	// Every line is a standalone JSON record.
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		assert.NotEmpty(t, record["level"])
		assert.NotEmpty(t, record["msg"])
	}
	assert.Contains(t, string(content), "imported parameters")
	assert.Contains(t, string(content), "blinding disabled")
}
