package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/JaimeStill/flames/internal/config"
	"github.com/JaimeStill/flames/internal/infrastructure"
	"github.com/JaimeStill/flames/internal/migrations"
	"github.com/JaimeStill/flames/pkg/database"
)

func main() {
	var (
		url     = flag.String("url", "", "Database URL (overrides DATABASE_URL and config.toml)")
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	if *url != "" {
		os.Setenv("DATABASE_URL", *url)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if cfg.Database.Driver == database.DriverSQLite && cfg.Database.Path == database.MemoryPath {
		log.Fatal("refusing to migrate an in-memory database")
	}

	logger := infrastructure.NewLogger(os.Stderr, cfg.Debug).With(
		"driver", cfg.Database.Driver,
	)

	m, err := database.NewMigrator(&cfg.Database, migrations.FS)
	if err != nil {
		log.Fatalf("failed to create migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatalf("failed to force version: %v", err)
		}
		logger.Info("forced migration version", "version", *force)
	case *up:
		v, err := database.Up(m)
		if err != nil {
			log.Fatal(err)
		}
		logger.Info("migrations applied", "version", v)
	case *down:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run down migrations: %v", err)
		}
		logger.Info("migrations reverted")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run migrations: %v", err)
		}
		logger.Info("applied migration steps", "steps", *steps)
	default:
		fmt.Println("usage: migrate [-url <database-url>] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
}
