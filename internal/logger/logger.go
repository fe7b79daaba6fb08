package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Setup initializes the global zerolog logger based on environment configuration.
//   - level: log level string (trace, debug, info, warn, error, fatal, panic)
//   - format: "json" for production, "pretty" for human-readable dev output,
//     "auto" for pretty on a terminal and json otherwise
//
// Returns the configured logger instance.
func Setup(level, format string) zerolog.Logger {
	return New(os.Stdout, level, format, term.IsTerminal(int(os.Stdout.Fd())))
}

// New builds a logger writing to out. isTTY resolves the "auto" format.
func New(out io.Writer, level, format string, isTTY bool) zerolog.Logger {
	var writer io.Writer

	if format == "pretty" || (format == "auto" && isTTY) {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	} else {
		writer = out
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Component derives a sub-logger tagged with the component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
