// Package config loads the gateway configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Supported store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is the root configuration of the gateway.
type Config struct {
	Port        string `validate:"required,numeric"`
	Store       StoreConfig
	RabbitMQURL string `validate:"omitempty,url"`
	Log         LogConfig
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Driver     string `validate:"oneof=mongo postgres sqlite memory"`
	User       string
	Password   string
	Host       string
	URI        string
	Database   string        `validate:"required"`
	Collection string        `validate:"required"`
	DSN        string
	Timeout    time.Duration `validate:"gt=0"`
	ListLimit  int64         `validate:"gt=0"`
}

// LogConfig controls the root logger.
type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn error"`
	Format string `validate:"oneof=json console"`
}

// Load reads configuration from environment variables. When envFile is not
// empty and exists it is read first; environment variables take precedence.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", "5000")
	v.SetDefault("DB_HOST", "cluster0.njyko.mongodb.net")
	v.SetDefault("DB_NAME", "toytopia")
	v.SetDefault("DB_COLLECTION", "all-toys")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("STORE_TIMEOUT", "10s")
	v.SetDefault("LIST_LIMIT", 20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port: v.GetString("PORT"),
		Store: StoreConfig{
			Driver:     v.GetString("STORE_DRIVER"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASS"),
			Host:       v.GetString("DB_HOST"),
			URI:        v.GetString("MONGODB_URI"),
			Database:   v.GetString("DB_NAME"),
			Collection: v.GetString("DB_COLLECTION"),
			DSN:        v.GetString("DATABASE_DSN"),
			Timeout:    v.GetDuration("STORE_TIMEOUT"),
			ListLimit:  v.GetInt64("LIST_LIMIT"),
		},
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and the settings each driver needs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.URI == "" && (c.Store.User == "" || c.Store.Password == "") {
			return errors.New("invalid configuration: DB_USER and DB_PASS or MONGODB_URI are required for the mongo driver")
		}
	case DriverPostgres, DriverSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("invalid configuration: DATABASE_DSN is required for the %s driver", c.Store.Driver)
		}
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// MongoURI returns the connection string for the mongo driver.
func (s StoreConfig) MongoURI() string {
	if s.URI != "" {
		return s.URI
	}
	return fmt.Sprintf("mongodb+srv://%s@%s/?retryWrites=true&w=majority",
		url.UserPassword(s.User, s.Password).String(), s.Host)
}
