package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/app"
	"taskdeck/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()

	model := app.New(cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs to the configured file. Stderr is
// not an option while the alternate screen is active, so logging falls
// back to discard when the file cannot be opened.
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	var w io.Writer = io.Discard
	closeLog := func() {}

	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err == nil {
			if f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
				closeLog = func() { _ = f.Close() }
			}
		}
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel(cfg.Log.Level)})
	return slog.New(handler), closeLog
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
