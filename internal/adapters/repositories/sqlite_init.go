package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-lab/internal/domain"
)

// Dialect selects placeholder and upsert syntax.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// Initialize the locations/distances schema. The DDL is portable between
// SQLite and PostgreSQL.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		position INTEGER NOT NULL,
		name TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        dist DOUBLE PRECISION NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_locations_position
    ON locations(position);
	`

	statements := []string{
		createLocationsQuery,
		createDistancesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedWorld replaces the stored instance with locs and dists in one transaction.
func SeedWorld(ctx context.Context, db *sql.DB, dialect Dialect, locs []domain.Location, dists map[domain.Leg]float64) error {
	if db == nil {
		return errors.New("seed world: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed world: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"locations", "distances"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("seed world: clear %s: %w", table, err)
		}
	}

	locQuery := `
	INSERT OR REPLACE INTO locations (position, name, lat, lon)
	VALUES (?, ?, ?, ?);
	`
	distQuery := `
	INSERT OR REPLACE INTO distances (origin, destination, dist)
	VALUES (?, ?, ?);
	`
	if dialect == Postgres {
		locQuery = `
		INSERT INTO locations (position, name, lat, lon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET position = EXCLUDED.position,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon;
		`
		distQuery = `
		INSERT INTO distances (origin, destination, dist)
		VALUES ($1, $2, $3)
		ON CONFLICT (origin, destination) DO UPDATE
		SET dist = EXCLUDED.dist;
		`
	}

	locStmt, err := tx.PrepareContext(ctx, locQuery)
	if err != nil {
		return fmt.Errorf("seed world: prepare locations insert: %w", err)
	}
	defer locStmt.Close()

	for i, l := range locs {
		if _, err := locStmt.ExecContext(ctx, i, l.Name, l.Coords.Lat, l.Coords.Lon); err != nil {
			return fmt.Errorf("seed world: insert location %q: %w", l.Name, err)
		}
	}

	distStmt, err := tx.PrepareContext(ctx, distQuery)
	if err != nil {
		return fmt.Errorf("seed world: prepare distances insert: %w", err)
	}
	defer distStmt.Close()

	for leg, d := range dists {
		if _, err := distStmt.ExecContext(ctx, leg.From, leg.To, d); err != nil {
			return fmt.Errorf("seed world: insert distance %q: %w", leg.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed world: commit tx: %w", err)
	}

	return nil
}
