// Package logging builds the process logger. All components receive
// a zerolog.Logger by value; nothing logs through a global.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to stderr at the given level.
// Unknown level strings fall back to info.
func New(level string) zerolog.Logger {
	return NewWithOutput(level, os.Stderr)
}

// NewWithOutput is New with an explicit sink. Used by tests to
// capture output.
func NewWithOutput(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}
