package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns a logger writing to w at level.
// Pretty logs use a console writer, otherwise each event is a JSON line.
// An invalid level falls back to warn, and is reported as an error.
func newLogger(w io.Writer, level string, pretty bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
		if err == nil {
			err = fmt.Errorf("empty log level")
		} else {
			err = fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), err
}
