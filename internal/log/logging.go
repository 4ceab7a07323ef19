// Package log builds the slog logger marquee writes to.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mmcdole/marquee/internal/config"
)

// secretParam matches credential query parameters. Transport errors from
// net/http quote the full request URL, api_key included.
var secretParam = regexp.MustCompile(`((?:api_key|guest_session_id|session_id)=)[^&\s"]+`)

const redacted = "REDACTED"

// SetupLogger opens cfg.File for appending and returns a JSON logger on it.
// An empty path yields a discarding logger. The returned closer releases
// the log file.
func SetupLogger(cfg *config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return NullLogger(), io.NopCloser(nil), nil
	}

	logPath, err := expandHome(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewLogger(logFile, ParseLevel(cfg.Level)), logFile, nil
}

// NewLogger returns a JSON logger on w that scrubs credentials from
// string and error attributes
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	}))
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); secretParam.MatchString(s) {
			return slog.String(a.Key, Redact(s))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, Redact(err.Error()))
		}
	}
	return a
}

// Redact masks credential query parameters in s
func Redact(s string) string {
	return secretParam.ReplaceAllString(s, "${1}"+redacted)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ParseLevel converts a config level name to a slog.Level. Unknown names
// fall back to INFO.
func ParseLevel(level string) slog.Level {
	name := strings.ToUpper(strings.TrimSpace(level))
	if name == "WARNING" {
		name = "WARN"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
