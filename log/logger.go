package log

import (
	"io"
	"os"
	"strings"

	"log/slog"

	"github.com/dpotapov/slogpfx"
)

// Logger wraps a slog.Logger and tracks message prefixes, so that components can stack their own
// prefix on top of their parent's (ex. "[salary][extrinsic] submitted").
type Logger struct {
	*slog.Logger

	rawLogLevel string
	prefixes    []string
}

// Default logs to stderr at INFO.
func Default() *Logger {
	return NewLogger("info")
}

// NewLogger creates a logger writing to stderr, without a prefix.
func NewLogger(rawLogLevel string) *Logger {
	return NewLoggerWithWriter(os.Stderr, rawLogLevel)
}

// NewLoggerWithWriter creates a logger writing to the given writer, without a prefix.
func NewLoggerWithWriter(w io.Writer, rawLogLevel string) *Logger {
	slogger := newSlogger(w, rawLogLevel)
	return newLoggerWithSlogger(slogger, rawLogLevel, []string{})
}

// NewLoggerWithPrefixes creates a logger writing to stderr with a set of prefixes.
func NewLoggerWithPrefixes(rawLogLevel string, prefixes []string) *Logger {
	slogger := newSlogger(os.Stderr, rawLogLevel)
	return newLoggerWithSlogger(slogger, rawLogLevel, prefixes)
}

func newLoggerWithSlogger(slogger *slog.Logger, rawLogLevel string, prefixes []string) *Logger {
	prefix := strings.Join(prefixes, "")

	return &Logger{
		Logger:      slogger.With(prefixKey, prefix),
		rawLogLevel: rawLogLevel,
		prefixes:    prefixes,
	}
}

// ApplyPrefix returns a logger with an additional prefix.
func (l *Logger) ApplyPrefix(prefix string) *Logger {
	prefixes := make([]string, 0, len(l.prefixes)+1)
	prefixes = append(prefixes, l.prefixes...)
	prefixes = append(prefixes, prefix)

	return newLoggerWithSlogger(l.Logger, l.rawLogLevel, prefixes)
}

// With returns a logger that always logs the given key/value pairs.
func (l *Logger) With(args ...any) *Logger {
	slogger := l.Logger.With(args...)
	return newLoggerWithSlogger(slogger, l.rawLogLevel, l.prefixes)
}

// Level returns the level the logger was created with.
func (l *Logger) Level() slog.Level {
	return ParseLogLevel(l.rawLogLevel)
}

// Any value logged under this key is treated as a prefix by the slogpfx handler. Later values
// override earlier ones, which is why the whole prefix chain is re-joined on every ApplyPrefix.
const prefixKey = "_prefixKey"

func newSlogger(w io.Writer, rawLogLevel string) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(ParseLogLevel(rawLogLevel))

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamps make CLI output noisy and tests non-deterministic.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})

	// The default slogpfx formatter uses a '>' separator; prefixes here carry their own brackets.
	prefixFormatter := func(prefixes []slog.Value) string {
		p := make([]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			if prefix.Any() == nil || prefix.String() == "" {
				continue
			}
			p = append(p, prefix.String())
		}
		if len(p) == 0 {
			return ""
		}
		return strings.Join(p, "") + " "
	}

	prefixHandler := slogpfx.NewHandler(textHandler, &slogpfx.HandlerOptions{
		PrefixKeys:      []string{prefixKey},
		PrefixFormatter: prefixFormatter,
	})

	return slog.New(prefixHandler)
}
