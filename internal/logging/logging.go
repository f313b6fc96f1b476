package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type LogCode string

const (
	// SYSTEM EVENTS
	SYSTEM LogCode = "SYSTEM"

	// DATA OPERATIONS
	DATA_LOAD LogCode = "DATA_LOAD"

	// MODEL OPERATIONS
	MODEL_TRAIN   LogCode = "MODEL_TRAIN"
	MODEL_PREDICT LogCode = "MODEL_PREDICT"

	// USER FLOWS
	AUTH     LogCode = "AUTH"
	MAIL     LogCode = "MAIL"
	FEEDBACK LogCode = "FEEDBACK"
)

// New builds a slog logger for the given level and format ("text" or "json")
// and installs it as the process default.
func New(level string, format string, writer io.Writer) (*slog.Logger, error) {
	parsedLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	options := &slog.HandlerOptions{Level: parsedLevel}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		handler = slog.NewTextHandler(writer, options)
	case "json":
		handler = slog.NewJSONHandler(writer, options)
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log level %q", raw)
	}
}
