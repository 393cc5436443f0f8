// Package logging builds the zerolog logger used for diagnostics.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps diagnostics quiet unless asked for.
const DefaultLevel = "warn"

// ParseLevel maps a level name to a zerolog level. Empty selects DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		name = DefaultLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// New returns a human-readable logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewStderr parses the level name and returns a stderr logger.
func NewStderr(levelName string) (zerolog.Logger, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), err
	}
	return New(os.Stderr, level), nil
}
