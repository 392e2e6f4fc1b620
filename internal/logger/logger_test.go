package logger_test

import (
	"bytes"
	"testing"

	"github.com/abdidvp/rulecheck/internal/logger"
	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	assert.Equal(t, charmlog.DebugLevel, logger.DebugLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.WarnLevel, logger.WarnLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.ErrorLevel, logger.ErrorLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.InfoLevel, logger.LogLevel("verbose").ToCharmlogLevel())
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&logger.Config{Level: logger.WarnLevel, Output: &buf})

	log.Info("hidden")
	log.Error("extraction failed", "kind", "transport")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "extraction failed")
	assert.Contains(t, out, "transport")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&logger.Config{Level: logger.InfoLevel, Output: &buf, JSON: true})
	log.Info("submitted", "file", "rules.pdf")
	assert.Contains(t, buf.String(), `"msg":"submitted"`)
	assert.Contains(t, buf.String(), `"file":"rules.pdf"`)
}

func TestNop_DiscardsOutput(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Error("ignored")
	})
}
