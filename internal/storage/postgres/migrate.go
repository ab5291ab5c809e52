package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/cory-johannsen/gt4500/migrations"
)

// Direction selects which way Migrate moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MigrationResult reports the schema state after Migrate.
type MigrationResult struct {
	Version uint
	Dirty   bool
	// Changed is false when the schema was already at the target version.
	Changed bool
}

// Migrate applies the embedded fire journal migrations to the database at dsn.
// steps limits the number of migrations applied; 0 applies all of them.
func Migrate(dsn string, dir Direction, steps int) (MigrationResult, error) {
	if dir != Up && dir != Down {
		return MigrationResult{}, fmt.Errorf("invalid direction %q: must be %q or %q", dir, Up, Down)
	}
	if steps < 0 {
		return MigrationResult{}, fmt.Errorf("steps must be >= 0, got %d", steps)
	}
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return MigrationResult{}, fmt.Errorf("opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	switch {
	case dir == Up && steps > 0:
		err = m.Steps(steps)
	case dir == Up:
		err = m.Up()
	case steps > 0:
		err = m.Steps(-steps)
	default:
		err = m.Down()
	}

	res := MigrationResult{Changed: true}
	if errors.Is(err, migrate.ErrNoChange) {
		res.Changed = false
	} else if err != nil {
		return MigrationResult{}, fmt.Errorf("migrating %s: %w", dir, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("reading schema version: %w", verr)
	}
	res.Version = version
	res.Dirty = dirty
	return res, nil
}
