package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Setup builds the process logger. Outside local, records go to logPath
// (stdout when logPath is empty).
func Setup(env, logPath string) (*slog.Logger, error) {
	var out io.Writer = os.Stdout
	if env != envLocal && logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = logFile
	}

	switch env {
	case envLocal, envDev:
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})), nil
	case envProd:
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})), nil
	default:
		return nil, fmt.Errorf("invalid environment: %s", env)
	}
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
