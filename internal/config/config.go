package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the countries ETL run. Values come from
// environment variables, optionally seeded from a .env file at startup.
type Config struct {
	// Database connection
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"countries_db"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Connection pool
	DBMaxConns       int           `env:"DB_MAX_CONNS" envDefault:"4"`
	DBConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`

	// REST Countries API
	APIBaseURL  string        `env:"API_BASE_URL" envDefault:"https://restcountries.com/v3.1"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// Raw snapshot cache
	SnapshotPath   string `env:"SNAPSHOT_PATH" envDefault:"countries_raw.json"`
	APIUseSnapshot bool   `env:"API_USE_SNAPSHOT" envDefault:"false"`

	// Load tuning
	LoadBatchSize int `env:"LOAD_BATCH_SIZE" envDefault:"100"`

	// Environment name; "production"/"prod" selects production logging.
	AppEnv string `env:"APP_ENV" envDefault:"development"`
}

// Load parses configuration from environment variables and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load configuration from environment: %w", err)
	}
	return cfg, nil
}

// DatabaseURL renders the pgx connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Production reports whether the configured environment is a production one.
func (c *Config) Production() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}
