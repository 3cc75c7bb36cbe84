package log

import (
	"strings"

	"log/slog"
)

// ParseLogLevel maps a user supplied level onto a slog level. Unknown input logs at INFO.
func ParseLogLevel(input string) slog.Level {
	level, ok := parseLogLevel(input)
	if !ok {
		return slog.LevelInfo
	}
	return level
}

// IsValidLogLevel reports whether input names a known level.
func IsValidLogLevel(input string) bool {
	_, ok := parseLogLevel(input)
	return ok
}

func parseLogLevel(input string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
