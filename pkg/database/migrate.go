package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies every pending up migration from migrations/<driver> and
// returns the resulting schema version.
//
// SQLite migrates through db itself so :memory: databases see the schema.
// PostgreSQL migrates through a dedicated pool because the pgx driver pins
// a connection until it is closed.
func Migrate(db *sql.DB, cfg *Config, migrations fs.FS) (uint, error) {
	if cfg.Driver != DriverSQLite {
		m, err := NewMigrator(cfg, migrations)
		if err != nil {
			return 0, err
		}
		defer m.Close()
		return Up(m)
	}

	source, err := iofs.New(migrations, cfg.Driver)
	if err != nil {
		return 0, fmt.Errorf("migration source: %w", err)
	}
	defer source.Close()

	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return 0, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Driver, driver)
	if err != nil {
		return 0, fmt.Errorf("create migrator: %w", err)
	}
	return Up(m)
}

// NewMigrator opens a dedicated connection and returns a migrator over
// migrations/<driver>. Closing the migrator closes that connection.
func NewMigrator(cfg *Config, migrations fs.FS) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	db, err := sql.Open(cfg.DriverName(), cfg.Dsn())
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("open migration connection: %w", err)
	}

	var driver migratedb.Driver
	switch cfg.Driver {
	case DriverSQLite:
		driver, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	case DriverPostgres:
		driver, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	default:
		err = fmt.Errorf("unsupported driver: %q", cfg.Driver)
	}
	if err != nil {
		source.Close()
		db.Close()
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Driver, driver)
	if err != nil {
		source.Close()
		driver.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// Up applies all pending migrations and returns the resulting version.
// An up-to-date or empty schema is not an error.
func Up(m *migrate.Migrate) (uint, error) {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("run migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	return version, nil
}
