package database_test

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/JaimeStill/flames/pkg/database"
	"github.com/JaimeStill/flames/pkg/lifecycle"
)

var testMigrations = fstest.MapFS{
	"sqlite/000001_create_items.up.sql":   {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL);")},
	"sqlite/000001_create_items.down.sql": {Data: []byte("DROP TABLE items;")},
}

func memoryConfig() *database.Config {
	return &database.Config{
		Driver:      database.DriverSQLite,
		Path:        database.MemoryPath,
		ConnTimeout: "5s",
	}
}

func TestNewPostgresIsLazy(t *testing.T) {
	cfg := database.Config{
		Driver:          database.DriverPostgres,
		Host:            "localhost",
		Port:            5432,
		Name:            "testdb",
		User:            "testuser",
		SSLMode:         "disable",
		MaxOpenConns:    42,
		MaxIdleConns:    7,
		ConnMaxLifetime: "10m",
		ConnTimeout:     "3s",
	}

	sys, err := database.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := sys.Connection()
	defer conn.Close()

	if sys.Driver() != database.DriverPostgres {
		t.Errorf("Driver() = %s", sys.Driver())
	}
	if got := conn.Stats().MaxOpenConnections; got != 42 {
		t.Errorf("MaxOpenConnections = %d, want 42", got)
	}
}

func TestSQLiteSingleConnection(t *testing.T) {
	sys, err := database.New(memoryConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sys.Connection().Close()

	if got := sys.Connection().Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}
}

func TestStartMigrates(t *testing.T) {
	var logs bytes.Buffer
	sys, err := database.New(memoryConfig(), slog.New(slog.NewTextHandler(&logs, nil)), testMigrations)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("startup: %v", err)
	}

	if _, err := sys.Connection().Exec("INSERT INTO items(name) VALUES ($1)", "a"); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}
	if !strings.Contains(logs.String(), "version=1") {
		t.Errorf("logs missing schema version: %s", logs.String())
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := sys.Connection().Ping(); err == nil {
		t.Error("connection should be closed after shutdown")
	}
}

func TestMigratorUpAndDown(t *testing.T) {
	cfg := &database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "flames.db"),
	}

	m, err := database.NewMigrator(cfg, testMigrations)
	if err != nil {
		t.Fatalf("NewMigrator() error = %v", err)
	}
	defer m.Close()

	version, err := database.Up(m)
	if err != nil {
		t.Fatalf("Up() error = %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}

	if _, err := database.Up(m); err != nil {
		t.Errorf("second Up() should be a no-op: %v", err)
	}

	if err := m.Down(); err != nil {
		t.Fatalf("Down() error = %v", err)
	}
}

func TestMigratorUnknownDriver(t *testing.T) {
	cfg := &database.Config{Driver: "mysql"}
	if _, err := database.NewMigrator(cfg, testMigrations); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
