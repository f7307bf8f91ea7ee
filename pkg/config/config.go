package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the config file read by Load when present.
const DefaultPath = "config.yaml"

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendREST     = "rest"
	BackendFile     = "file"
)

// Config holds all configuration for plant-catalog.
// Values come from config.yaml when it exists, and environment variables
// always override them. Secrets (database password, record API key) are
// only read from the environment.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Derived from Port if empty
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	Store     StoreConfig     `yaml:"store"`
	Database  DatabaseConfig  `yaml:"database"`
	RecordAPI RecordAPIConfig `yaml:"record_api"`
	Display   DisplayConfig   `yaml:"display"`
	Speech    SpeechConfig    `yaml:"speech"`
}

// StoreConfig selects the Record Store backend.
type StoreConfig struct {
	// Backend is one of postgres, rest or file.
	Backend string `yaml:"backend" env:"STORE_BACKEND" env-default:"postgres"`
	// CatalogFile is the YAML catalog read by the file backend.
	CatalogFile string `yaml:"catalog_file" env:"CATALOG_FILE" env-default:"catalog.yaml"`
}

// DatabaseConfig holds PostgreSQL configuration for the postgres backend.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"plants"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"plant_catalog"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	// MaxConnLifetime and MaxConnIdleTime keep the pgx defaults when zero.
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"PGMAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"PGMAX_CONN_IDLE_TIME" env-default:"30m"`
	// RunMigrations applies pending schema migrations at startup.
	RunMigrations bool `yaml:"run_migrations" env:"PG_RUN_MIGRATIONS" env-default:"true"`
}

// RecordAPIConfig holds settings for a hosted PostgREST-style record API.
type RecordAPIConfig struct {
	URL     string        `yaml:"url" env:"RECORD_API_URL" env-default:""`
	APIKey  string        `yaml:"-" env:"RECORD_API_KEY"` // Secret - not in YAML
	Table   string        `yaml:"table" env:"RECORD_API_TABLE" env-default:"plants"`
	Timeout time.Duration `yaml:"timeout" env:"RECORD_API_TIMEOUT" env-default:"10s"`
	// BreakerFailures consecutive failures open the circuit breaker.
	BreakerFailures uint32 `yaml:"breaker_failures" env:"RECORD_API_BREAKER_FAILURES" env-default:"5"`
	// BreakerOpenFor is how long the breaker rejects calls before probing.
	BreakerOpenFor time.Duration `yaml:"breaker_open_for" env:"RECORD_API_BREAKER_OPEN_FOR" env-default:"30s"`
}

// DisplayConfig controls how records are phrased.
type DisplayConfig struct {
	// Style is narrative or terse.
	Style    string `yaml:"style" env:"DISPLAY_STYLE" env-default:"narrative"`
	SiteName string `yaml:"site_name" env:"SITE_NAME" env-default:"HKBK"`
	Title    string `yaml:"title" env:"SITE_TITLE" env-default:"HKBK Plant Catalog"`
}

// SpeechConfig holds the read-aloud utterance parameters.
type SpeechConfig struct {
	Locale string  `yaml:"locale" env:"SPEECH_LOCALE" env-default:"en-IN"`
	Rate   float64 `yaml:"rate" env:"SPEECH_RATE" env-default:"1"`
}

// Load reads path (when it exists) with environment variable overrides.
// The version parameter is injected at build time.
func Load(path, version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

// validate checks the settings the selected backend depends on.
func (c *Config) validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))

	switch c.Store.Backend {
	case BackendPostgres:
		if c.Database.MaxConnections <= 0 {
			return fmt.Errorf("database.max_connections must be positive, got %d", c.Database.MaxConnections)
		}
	case BackendREST:
		if c.RecordAPI.URL == "" {
			return fmt.Errorf("record_api.url is required for the %s backend", BackendREST)
		}
		if _, err := url.ParseRequestURI(c.RecordAPI.URL); err != nil {
			return fmt.Errorf("record_api.url: %w", err)
		}
	case BackendFile:
		if c.Store.CatalogFile == "" {
			return fmt.Errorf("store.catalog_file is required for the %s backend", BackendFile)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Speech.Rate <= 0 {
		return fmt.Errorf("speech.rate must be positive, got %v", c.Speech.Rate)
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		ResolveHostForDocker(c.Host), c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
