package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Driver names registered by the blank imports in cmd/.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Open opens and verifies a database handle for driver ("sqlite" or "pgx").
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", driver, err)
	}

	switch driver {
	case DriverSQLite:
		// A single writer avoids SQLITE_BUSY and keeps :memory: databases on one connection.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", driver, err)
	}

	return db, nil
}
