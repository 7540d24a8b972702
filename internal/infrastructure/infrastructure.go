// Package infrastructure assembles the shared systems every module needs:
// lifecycle coordination, the logger, and the database.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/flames/internal/config"
	"github.com/JaimeStill/flames/internal/migrations"
	"github.com/JaimeStill/flames/pkg/database"
	"github.com/JaimeStill/flames/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
}

// New creates an Infrastructure that logs to stderr. Systems are created but
// not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput is New with the log destination supplied by the caller.
func NewWithOutput(cfg *config.Config, out io.Writer) (*Infrastructure, error) {
	logger := NewLogger(out, cfg.Debug)

	db, err := database.New(&cfg.Database, logger, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
	}, nil
}

// NewLogger returns the service's text logger, at debug level when debug is set.
func NewLogger(out io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// Start registers the infrastructure's startup and shutdown hooks with the
// lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
