package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies every pending migration found at path to the database
// identified by dsn and returns the resulting schema version.
func RunMigrations(path string, dsn string) (uint, error) {
	const op = "postgres.RunMigrations"

	m, err := migrate.New(path, dsn)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to initialize migrations: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to read schema version: %w", op, err)
	}

	if dirty {
		return version, fmt.Errorf("%s: schema version %d is dirty", op, version)
	}

	return version, nil
}
