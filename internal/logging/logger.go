// Package logging configures the charmbracelet/log loggers used by the CLI,
// the page loader and the language server, and carries them through
// contexts.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // shared fallback for code without a context logger
var std atomic.Pointer[log.Logger]

// ParseLevel maps a level name to a log level. "warning" is accepted for
// warn and unknown names fall back to info.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// New returns a plain stderr logger at the named level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a plain logger writing to w. The language server
// passes stderr here so stdout stays reserved for JSON-RPC.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive returns a timestamped, prefixed stderr logger for
// long-running commands.
func NewInteractive() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "govimwiki",
	})
}

// Default returns the process-wide logger, creating an info-level one on
// first use.
func Default() *log.Logger {
	if logger := std.Load(); logger != nil {
		return logger
	}
	std.CompareAndSwap(nil, New("info"))
	return std.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	std.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
