// Package app wires the shared application pieces: the logger and the
// store bootstrap used by every command.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow/internal/config"
)

// NewLogger builds a zerolog logger writing to the log file under the
// data directory. The returned closer flushes and closes the file.
func NewLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("unknown log level %q: %w", cfg.LogLevel, err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath()), 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(f).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()

	return logger, func() { f.Close() }, nil
}
