// Package config loads the back-office configuration from environment variables.
// envconfig maps variables onto the Config struct; Validate catches values that
// parse but make no sense.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config holds every setting of the application.
type Config struct {
	// --- Database ---
	// Inside docker-compose the database service is called "postgres";
	// override DB_HOST=localhost for a local run.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"erp"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"busline_erp"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"1"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"America/Mexico_City"`

	// --- Auth ---
	// The seed administrator. The hash comes from scripts/generate_hash.go,
	// so no password ships with the binary.
	AdminUsername      string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPasswordHash  string        `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`
	SessionTTL         time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	LoginMaxAttempts   int           `envconfig:"LOGIN_MAX_ATTEMPTS" default:"3"`
	LoginLockoutWindow time.Duration `envconfig:"LOGIN_LOCKOUT_WINDOW" default:"1h"`

	// --- Finance ---
	LedgerOpeningBalance string `envconfig:"LEDGER_OPENING_BALANCE" default:"100000000.00"`

	// --- Fleet ---
	BusDefaultCapacity int    `envconfig:"BUS_DEFAULT_CAPACITY" default:"24"`
	BusPriceVolvo      string `envconfig:"BUS_PRICE_VOLVO" default:"2500000.00"`
	BusPriceDefault    string `envconfig:"BUS_PRICE_DEFAULT" default:"2000000.00"`

	// --- Jobs ---
	FeatureJobsEnabled   bool   `envconfig:"FEATURE_JOBS_ENABLED" default:"true"`
	JobsLedgerAuditCron  string `envconfig:"JOBS_LEDGER_AUDIT_CRON" default:"0 3 * * *"`
	JobsSalesSummaryCron string `envconfig:"JOBS_SALES_SUMMARY_CRON" default:"55 23 * * *"`
}

// DatabaseDSN returns the PostgreSQL connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) Validate() error {
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.LoginMaxAttempts <= 0 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be > 0")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.BusDefaultCapacity <= 0 {
		return fmt.Errorf("BUS_DEFAULT_CAPACITY must be > 0")
	}
	for name, v := range map[string]string{
		"LEDGER_OPENING_BALANCE": c.LedgerOpeningBalance,
		"BUS_PRICE_VOLVO":        c.BusPriceVolvo,
		"BUS_PRICE_DEFAULT":      c.BusPriceDefault,
	} {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d.IsNegative() {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

// Load reads the environment and fills Config. A .env file in the working
// directory is read first if present; variables already set win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
