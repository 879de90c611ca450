package app

import (
	"context"
	"fmt"
	"image"
	"strings"
	"tour-lab/internal/adapters/cache"
	"tour-lab/internal/adapters/csvsource"
	"tour-lab/internal/adapters/repositories"
	"tour-lab/internal/config"
	"tour-lab/internal/domain"
	"tour-lab/internal/geo"
	"tour-lab/internal/platform/db"
	"tour-lab/internal/ports"
	"tour-lab/internal/render"
	"tour-lab/internal/services"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cleanup releases whatever a constructor opened.
type Cleanup func()

func noop() {}

// OpenWorldRepository returns the instance source selected by cfg.DBDriver.
// The sql drivers must be registered by the caller's blank imports.
func OpenWorldRepository(cfg config.Config) (ports.WorldRepository, Cleanup, error) {
	switch cfg.DBDriver {
	case "csv":
		repo, err := csvsource.Load(cfg.LocationsCSV, cfg.DistancesCSV)
		if err != nil {
			return nil, noop, fmt.Errorf("open world repository: %w", err)
		}
		return repo, noop, nil
	case db.DriverSQLite, db.DriverPostgres:
		dsn := cfg.DBPath
		if cfg.DBDriver == db.DriverPostgres {
			dsn = cfg.DatabaseURL
		}
		conn, err := db.Open(cfg.DBDriver, dsn)
		if err != nil {
			return nil, noop, fmt.Errorf("open world repository: %w", err)
		}
		return repositories.NewSQLWorldRepository(conn), func() { _ = conn.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("open world repository: unknown driver %q", cfg.DBDriver)
	}
}

// LoadEvaluator reads the configured instance and wraps it in an Evaluator.
func LoadEvaluator(ctx context.Context, cfg config.Config, log *zap.Logger) (*services.Evaluator, error) {
	repo, cleanup, err := OpenWorldRepository(cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	world, err := services.LoadWorld(ctx, repo)
	if err != nil {
		return nil, err
	}

	return services.NewEvaluator(world, log)
}

// OpenMeasureCache returns the cache selected by cfg.CacheBackend, or nil
// for "none". Redis keys carry the world's fingerprint, so instances that
// share a server never read each other's costs.
func OpenMeasureCache(ctx context.Context, cfg config.Config, world *domain.World) (ports.MeasureCache, Cleanup, error) {
	switch cfg.CacheBackend {
	case "none", "":
		return nil, noop, nil
	case "lru":
		c, err := cache.NewLRUMeasureCache(cfg.CacheSize)
		if err != nil {
			return nil, noop, fmt.Errorf("open measure cache: %w", err)
		}
		return c, noop, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("open measure cache: ping redis %q: %w", cfg.RedisAddr, err)
		}
		prefix := cache.DefaultKeyPrefix + world.Fingerprint() + ":"
		return cache.NewRedisMeasureCache(client, prefix, cfg.CacheTTL), func() { _ = client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("open measure cache: unknown backend %q", cfg.CacheBackend)
	}
}

// NewRenderer returns a renderer over the Edinburgh frame, with the map
// image as background when cfg.MapImage is set.
func NewRenderer(cfg config.Config) (*render.Renderer, error) {
	var bg image.Image
	if path := strings.TrimSpace(cfg.MapImage); path != "" {
		img, err := render.LoadBackground(path)
		if err != nil {
			return nil, fmt.Errorf("new renderer: %w", err)
		}
		bg = img
	}

	return render.NewRenderer(geo.EdinburghFrame(), bg), nil
}
