package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// Initialize installs the default slog logger. Logs go to w so that stdout
// stays free for the step report. noColor disables tint's colors.
func Initialize(w io.Writer, loggingType string, logLevelName string, noColor bool) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(logLevelName))
	if err != nil {
		return fmt.Errorf("could not parse log level: %v", err)
	}

	var (
		logHandlerOptions = slog.HandlerOptions{
			AddSource: logLevel <= slog.LevelDebug,
			Level:     logLevel,
		}
		logHandler slog.Handler
	)

	switch loggingType {
	case JSON:
		logHandler = slog.NewJSONHandler(w, &logHandlerOptions)
	case Text:
		logHandler = slog.NewTextHandler(w, &logHandlerOptions)
	case Tint:
		logHandler = tint.NewHandler(w, &tint.Options{
			AddSource: logHandlerOptions.AddSource,
			Level:     logHandlerOptions.Level,
			NoColor:   noColor,
		})
	default:
		return fmt.Errorf("unknown logging type: %s", loggingType)
	}

	slog.SetDefault(slog.New(logHandler))
	slog.Debug("logging initialized", "logLevel", logLevel)
	return nil
}
