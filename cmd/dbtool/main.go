package main

import (
	"context"
	"flag"
	"log"
	"tour-lab/internal/adapters/csvsource"
	"tour-lab/internal/adapters/repositories"
	"tour-lab/internal/config"
	"tour-lab/internal/platform/db"
	"tour-lab/internal/platform/obs"
	"tour-lab/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// dbtool creates the schema in the configured database and loads the
// locations and distances CSV files into it.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	driver := flag.String("driver", cfg.DBDriver, "database driver: sqlite or pgx")
	locPath := flag.String("locations", cfg.LocationsCSV, "locations CSV")
	distPath := flag.String("distances", cfg.DistancesCSV, "distances CSV")
	flag.Parse()

	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *driver == "csv" {
		*driver = db.DriverSQLite
	}

	dsn := cfg.DBPath
	dialect := repositories.SQLite
	if *driver == db.DriverPostgres {
		dsn = cfg.DatabaseURL
		dialect = repositories.Postgres
	}
	if dsn == "" {
		logger.Fatal("database location is empty", zap.String("driver", *driver))
	}

	if err := initAndSeed(context.Background(), logger, *driver, dsn, dialect, *locPath, *distPath); err != nil {
		logger.Fatal("dbtool failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, logger *zap.Logger, driver, dsn string, dialect repositories.Dialect, locPath, distPath string) error {
	src, err := csvsource.Load(locPath, distPath)
	if err != nil {
		return err
	}

	// Refuse to store an instance the server would reject on startup.
	world, err := services.LoadWorld(ctx, src)
	if err != nil {
		return err
	}
	locs := world.Locations()
	dists := world.Distances().Entries()

	conn, err := db.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("initializing database schema", zap.String("driver", driver))
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}

	logger.Info("seeding database", zap.Int("locations", len(locs)), zap.Int("distances", len(dists)))
	if err := repositories.SeedWorld(ctx, conn, dialect, locs, dists); err != nil {
		return err
	}
	logger.Info("seeding complete")

	return nil
}
