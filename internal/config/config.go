package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the commands read. Environment variables win
// over the YAML file named by TOURLAB_CONFIG, which wins over defaults.
type Config struct {
	Port         string        `yaml:"port"`
	DBDriver     string        `yaml:"db_driver"`
	DBPath       string        `yaml:"db_path"`
	DatabaseURL  string        `yaml:"database_url"`
	LocationsCSV string        `yaml:"locations_csv"`
	DistancesCSV string        `yaml:"distances_csv"`
	MapImage     string        `yaml:"map_image"`
	CacheBackend string        `yaml:"cache_backend"`
	CacheSize    int           `yaml:"cache_size"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	RedisAddr    string        `yaml:"redis_addr"`
	LogLevel     string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Port:         "8080",
		DBDriver:     "csv",
		DBPath:       "data/tourlab.db",
		LocationsCSV: "data/edinburgh.csv",
		DistancesCSV: "data/dists.csv",
		CacheBackend: "lru",
		CacheSize:    4096,
		CacheTTL:     time.Hour,
		RedisAddr:    "localhost:6379",
		LogLevel:     "info",
	}
}

// Load reads .env (if present), the optional YAML overlay, then the environment.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load config: read .env: %w", err)
	}

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("TOURLAB_CONFIG")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("decode %q: %w", path, err)
	}

	return nil
}

func (c *Config) mergeEnv() error {
	c.Port = Get("PORT", c.Port)
	c.DBDriver = Get("DB_DRIVER", c.DBDriver)
	c.DBPath = Get("DB_PATH", c.DBPath)
	c.DatabaseURL = Get("DATABASE_URL", c.DatabaseURL)
	c.LocationsCSV = Get("LOCATIONS_CSV", c.LocationsCSV)
	c.DistancesCSV = Get("DISTANCES_CSV", c.DistancesCSV)
	c.MapImage = Get("MAP_IMAGE", c.MapImage)
	c.CacheBackend = Get("CACHE_BACKEND", c.CacheBackend)
	c.RedisAddr = Get("REDIS_ADDR", c.RedisAddr)
	c.LogLevel = Get("LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse CACHE_SIZE %q: %w", v, err)
		}
		c.CacheSize = n
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse CACHE_TTL %q: %w", v, err)
		}
		c.CacheTTL = d
	}

	return nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "csv", "sqlite", "pgx":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want csv, sqlite or pgx)", c.DBDriver)
	}
	if c.DBDriver == "pgx" && strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required when DB_DRIVER=pgx")
	}

	switch c.CacheBackend {
	case "none":
	case "lru":
		if c.CacheSize <= 0 {
			return fmt.Errorf("CACHE_SIZE must be > 0 (got %d)", c.CacheSize)
		}
	case "redis":
		if strings.TrimSpace(c.RedisAddr) == "" {
			return errors.New("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q (want lru, redis or none)", c.CacheBackend)
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
