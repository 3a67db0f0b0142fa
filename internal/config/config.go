package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Session  SessionConfig
	Events   EventsConfig
	Log      LogConfig
}

// DatabaseConfig contains backend connection settings.
type DatabaseConfig struct {
	Driver  string        // "sqlite" or "postgres"
	DSN     string        // sqlite file/URI or postgres connection string
	Migrate bool          // apply embedded migrations on open
	Seed    bool          // insert the demo catalog, stores and users
	Timeout time.Duration // per-statement timeout
}

// SessionConfig contains login session settings.
type SessionConfig struct {
	Secret        string        // HS256 signing key for session tokens
	TTL           time.Duration // session token lifetime
	HashPasswords bool          // store new passwords as bcrypt hashes
}

// EventsConfig contains the optional order-event broker settings.
type EventsConfig struct {
	AMQPURL  string // empty disables publishing
	Exchange string
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Load loads configuration from the environment (and an optional .env file).
// SESSION_SECRET is required.
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a fixed development session secret.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return load("dev-secret-change-me")
}

func load(defaultSecret string) (*Config, error) {
	// A missing .env file is fine; the environment alone is enough.
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))
	timeout, err := getEnvInt("DB_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	ttl, err := getEnvInt("SESSION_TTL_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	migrate, err := getEnvBool("DB_MIGRATE", driver == DriverSQLite)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvBool("DB_SEED", false)
	if err != nil {
		return nil, err
	}
	hash, err := getEnvBool("HASH_PASSWORDS", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Driver:  driver,
			DSN:     getEnv("DB_DSN", "pizzastore.db"),
			Migrate: migrate,
			Seed:    seed,
			Timeout: time.Duration(timeout) * time.Second,
		},
		Session: SessionConfig{
			Secret:        getEnv("SESSION_SECRET", defaultSecret),
			TTL:           time.Duration(ttl) * time.Minute,
			HashPasswords: hash,
		},
		Events: EventsConfig{
			AMQPURL:  getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "orders_topic"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Database.DSN == "" {
		return errors.New("DB_DSN must not be empty")
	}
	if c.Database.Timeout <= 0 {
		return errors.New("DB_TIMEOUT_SECONDS must be positive")
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL_MINUTES must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("unsupported LOG_LEVEL %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	broker := "disabled"
	if c.Events.AMQPURL != "" {
		broker = c.Events.Exchange
	}
	return fmt.Sprintf("Config{DB: %s %s, Session: *** (masked) ***, Events: %s, Log: %s}",
		c.Database.Driver, maskDSN(c.Database.DSN), broker, c.Log.Level)
}

// maskDSN hides the password part of a URL-style DSN.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return dsn[:scheme+3] + creds[:colon] + ":***" + dsn[at:]
	}
	return dsn
}
