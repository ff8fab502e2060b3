package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger. An explicit level from config wins; otherwise
// development gets debug and production gets info.
func New(environment, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
		if environment == "production" {
			lvl = zerolog.InfoLevel
		}
	}

	return zerolog.New(output).With().
		Timestamp().
		Str("service", "homefind-api").
		Str("env", environment).
		Logger().
		Level(lvl)
}
