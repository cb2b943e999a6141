package logger

import (
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	tokenRegex  = regexp.MustCompile(`eyJ[A-Za-z0-9_\-]*\.[A-Za-z0-9_\-]*\.[A-Za-z0-9_\-]*`)
	bearerRegex = regexp.MustCompile(`(?i)\bbearer\s+\S+`)
)

// sensitiveKeys are attribute names whose values are never written out
var sensitiveKeys = map[string]bool{
	"password":      true,
	"password_hash": true,
	"token":         true,
	"authorization": true,
	"secret":        true,
}

// New creates the application logger. Development mode logs at debug level.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a JSON logger writing to w
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}))
}

// Module returns a child logger tagged with the component name
func Module(l *slog.Logger, name string) *slog.Logger {
	return l.With(slog.String("module", name))
}

// Anonymize replaces JWTs and bearer credentials in s
func Anonymize(s string) string {
	s = bearerRegex.ReplaceAllString(s, "bearer "+redacted)
	return tokenRegex.ReplaceAllString(s, redacted)
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, redacted)
	}
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, Anonymize(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, Anonymize(err.Error()))
		}
	}
	return a
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
