package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger: human-readable console output during
// development, JSON elsewhere.
func New(environment string) zerolog.Logger {
	if environment == "development" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
