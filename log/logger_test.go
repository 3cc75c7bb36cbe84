package log_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/traumschule/joyutils/log"
)

func TestLogging_NoPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLoggerWithWriter(buffer, "info")

	assert.Equal(t, "level=INFO msg=submitted\n", logLine(buffer, logger, "submitted"))
	assert.Equal(t, "level=INFO msg=submitted account=j4R tx_hash=0xabc\n", logLine(buffer, logger, "submitted", "account", "j4R", "tx_hash", "0xabc"))

	logger = logger.With("account", "j4R")
	assert.Equal(t, "level=INFO msg=submitted account=j4R\n", logLine(buffer, logger, "submitted"))
}

func TestLogging_ApplyPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLoggerWithWriter(buffer, "info").ApplyPrefix("[salary]")

	assert.Equal(t, "level=INFO msg=\"[salary] staged\"\n", logLine(buffer, logger, "staged"))

	logger = logger.With("group", "forumWorkingGroup")
	assert.Equal(t, "level=INFO msg=\"[salary] staged\" group=forumWorkingGroup\n", logLine(buffer, logger, "staged"))

	nested := logger.ApplyPrefix("[extrinsic]")
	assert.Equal(t, "level=INFO msg=\"[salary][extrinsic] staged\" group=forumWorkingGroup\n", logLine(buffer, nested, "staged"))

	// Applying a prefix to a child must not leak into the parent.
	assert.Equal(t, "level=INFO msg=\"[salary] staged\" group=forumWorkingGroup\n", logLine(buffer, logger, "staged"))
}

func TestLogging_LevelFiltering(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLoggerWithWriter(buffer, "warn")

	logger.Info("hidden")
	assert.Empty(t, buffer.String())

	logger.Warn("shown")
	assert.Equal(t, "level=WARN msg=shown\n", buffer.String())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, log.ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, log.ParseLogLevel(" warn "))
	assert.Equal(t, slog.LevelError, log.ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, log.ParseLogLevel("chatty"))

	assert.True(t, log.IsValidLogLevel("warning"))
	assert.False(t, log.IsValidLogLevel("chatty"))
}

func logLine(buffer *bytes.Buffer, logger *log.Logger, msg string, vals ...any) string {
	buffer.Reset()
	logger.Info(msg, vals...)
	return buffer.String()
}
