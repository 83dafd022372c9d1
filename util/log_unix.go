//go:build linux || darwin

package util

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogWriter redirects all log output depending on debug parameter.
// When true everything down to debug level goes to w.
// When false - only warnings and errors.
func NewLogWriter(title string, w io.Writer, debug bool) {

	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		With().Str("app", title).Logger()
}
