// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points log.Logger at w: pretty console output in development, JSON in
// production. An unknown level falls back to info and is reported once.
func Setup(w io.Writer, env, level string) {
	if w == nil {
		w = os.Stderr
	}
	if env == "production" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Str("log_level", level).Msg("nivel de log desconocido, usando info")
		return
	}
	zerolog.SetGlobalLevel(lvl)
}
