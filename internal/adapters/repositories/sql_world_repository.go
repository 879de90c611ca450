package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-lab/internal/domain"
	"tour-lab/internal/platform/obs"
)

// SQLWorldRepository reads the instance from the locations/distances tables.
// The queries carry no placeholders, so one implementation serves both the
// SQLite and the PostgreSQL (pgx) drivers.
type SQLWorldRepository struct {
	DB *sql.DB
}

func NewSQLWorldRepository(db *sql.DB) *SQLWorldRepository {
	return &SQLWorldRepository{DB: db}
}

// Return all locations in load order.
func (s *SQLWorldRepository) ListLocations(ctx context.Context) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "world.repo.ListLocations")(&err)

	if s.DB == nil {
		return nil, errors.New("sql world repository: DB is nil")
	}

	query := `
	SELECT
		name,
		lat,
		lon
	FROM locations
	ORDER BY position, name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0, 64)
	for rows.Next() {
		var name string
		var lat, lon float64
		if err := rows.Scan(&name, &lat, &lon); err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locations = append(locations, domain.Location{Name: name, Coords: domain.Coordinates{Lat: lat, Lon: lon}})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}

// Return every stored distance entry.
func (s *SQLWorldRepository) ListDistances(ctx context.Context) (_ map[domain.Leg]float64, err error) {
	defer obs.Time(ctx, "world.repo.ListDistances")(&err)

	if s.DB == nil {
		return nil, errors.New("sql world repository: DB is nil")
	}

	query := `
	SELECT
        origin,
        destination,
        dist
    FROM distances;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list distances: query distances table: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Leg]float64, 256)
	for rows.Next() {
		var origin, dest string
		var d float64
		if err := rows.Scan(&origin, &dest, &d); err != nil {
			return nil, fmt.Errorf("list distances: scan rows: %w", err)
		}
		out[domain.Leg{From: origin, To: dest}] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list distances: row iteration: %w", err)
	}

	return out, nil
}
