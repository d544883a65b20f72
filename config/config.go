package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/writewithwrabit/tracker/logger"
)

var ErrNoDatabase = errors.New("either DATABASE_URL or CLOUDSQL_CONNECTION_NAME must be set")

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	Timezone       string        `env:"TIMEZONE" envDefault:"UTC"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	DatabaseURL    string `env:"DATABASE_URL"`
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	// Cloud SQL is used when DATABASE_URL is empty.
	CloudSQLConnectionName string `env:"CLOUDSQL_CONNECTION_NAME"`
	CloudSQLUser           string `env:"CLOUDSQL_USER"`
	CloudSQLDatabaseName   string `env:"CLOUDSQL_DATABASE_NAME"`
	CloudSQLPassword       string `env:"CLOUDSQL_PASSWORD"`

	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`

	LogDebug bool   `env:"LOG_DEBUG"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("File .env not found, using the environment only")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" && c.CloudSQLConnectionName == "" {
		return ErrNoDatabase
	}
	if c.DatabaseURL == "" && c.CloudSQLUser == "" {
		return errors.New("CLOUDSQL_USER must be set when using Cloud SQL")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Driver returns the database/sql driver name matching DSN.
func (c Config) Driver() string {
	if c.DatabaseURL != "" {
		return c.DatabaseDriver
	}
	return "cloudsqlpostgres"
}

// DSN returns the connection string for Driver.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s dbname=%s user=%s password=%s sslmode=disable",
		c.CloudSQLConnectionName, c.CloudSQLDatabaseName, c.CloudSQLUser, c.CloudSQLPassword)
}

// Location is the calendar used for month boundaries.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
