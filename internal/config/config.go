// Package config loads process configuration. Values are applied in order:
// defaults, TOML file, .env file, environment variables, command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DatabaseMemory   = "memory"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// EnvConfigPath names the environment variable holding the TOML file path.
const EnvConfigPath = "COOPERATIVE_CONFIG"

type Config struct {
	Port      int       `toml:"port"`
	LogLevel  string    `toml:"log_level"`
	Database  Database  `toml:"database"`
	RateLimit RateLimit `toml:"rate_limit"`
}

type Database struct {
	// Type is one of memory, postgres or sqlite.
	Type string `toml:"type"`
	// URL is the postgres DSN or the sqlite file path.
	URL string `toml:"url"`
}

type RateLimit struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

func Default() Config {
	return Config{
		Port:     8080,
		LogLevel: "info",
		Database: Database{
			Type: DatabaseMemory,
		},
		RateLimit: RateLimit{
			RequestsPerSecond: 50,
			Burst:             100,
		},
	}
}

// Load parses the command line flags in args and builds the configuration.
func Load(name string, args []string) (Config, error) {
	var (
		configPath, dbType, dbURL, logLevel string
		port                                int
	)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "TOML configuration file (or "+EnvConfigPath+" env)")
	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&dbType, "t", "", "Database type (memory, postgres or sqlite)")
	fs.StringVar(&dbURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := FromEnvironment(configPath)
	if err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = port
		case "t":
			cfg.Database.Type = dbType
		case "d":
			cfg.Database.URL = dbURL
		case "log-level":
			cfg.LogLevel = logLevel
		}
	})
	return cfg, cfg.Validate()
}

// FromEnvironment builds the configuration from the TOML file at path, the
// .env file in the working directory and the environment. An empty path
// falls back to COOPERATIVE_CONFIG. The result is not validated.
func FromEnvironment(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DATABASE_TYPE"); v != "" {
		cfg.Database.Type = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	} else if host := os.Getenv("POSTGRES_HOST"); host != "" && cfg.Database.URL == "" {
		cfg.Database.URL = PostgresURL(
			os.Getenv("POSTGRES_USER"),
			os.Getenv("POSTGRES_PASSWORD"),
			host,
			os.Getenv("POSTGRES_PORT"),
			os.Getenv("POSTGRES_DB"),
		)
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New("invalid RATE_LIMIT_RPS env variable")
		}
		cfg.RateLimit.RequestsPerSecond = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid RATE_LIMIT_BURST env variable")
		}
		cfg.RateLimit.Burst = burst
	}
	return nil
}

// PostgresURL builds a DSN from the POSTGRES_* style settings.
func PostgresURL(user, password, host, port, dbName string) string {
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.Database.Type {
	case DatabaseMemory, DatabaseSQLite:
	case DatabasePostgres:
		if c.Database.URL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unknown database type %q", c.Database.Type)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// SQLitePath returns the sqlite file, defaulting to cooperative.db.
func (c Config) SQLitePath() string {
	if c.Database.URL == "" {
		return "cooperative.db"
	}
	return c.Database.URL
}
