package log

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger = zerolog.Logger

// Setup configures the global zerolog logger. Console output by default;
// RECRUITART_LOG_JSON=1 switches to plain JSON for running under a
// supervisor.
func Setup() Logger {
	if os.Getenv("RECRUITART_LOG_JSON") == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	level := zerolog.InfoLevel
	if os.Getenv("RECRUITART_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Logger.Level(level)
	return log.Logger
}
