// Package config loads application settings from .env, the environment and
// an optional YAML file, and opens the database.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Catalog source kinds.
const (
	CatalogFile = "file"
	CatalogURL  = "url"
	CatalogDB   = "db"
)

// DBConfig holds database connection settings.
type DBConfig struct {
	Driver   string `yaml:"driver"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Hostname string `yaml:"hostname"`
	Name     string `yaml:"name"`
	// Path is the SQLite database file; ":memory:" is allowed.
	Path string `yaml:"path"`
}

// CatalogConfig selects where plants are loaded from.
type CatalogConfig struct {
	Source   string        `yaml:"source"`
	Path     string        `yaml:"path"`
	URL      string        `yaml:"url"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Config is the full application configuration.
type Config struct {
	Port      int           `yaml:"port"`
	Debug     bool          `yaml:"debug"`
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	DB        DBConfig      `yaml:"database"`
	Catalog   CatalogConfig `yaml:"catalog"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:      8080,
		JWTSecret: "plantcare_secret_key",
		TokenTTL:  7 * 24 * time.Hour,
		DB: DBConfig{
			Driver:   DriverMySQL,
			Username: "root",
			Password: "root",
			Hostname: "127.0.0.1:3306",
			Name:     "plantcare",
			Path:     "plantcare.db",
		},
		Catalog: CatalogConfig{
			Source:   CatalogFile,
			Path:     "data/plants.json",
			CacheTTL: 30 * time.Second,
			Timeout:  10 * time.Second,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// PLANTCARE_CONFIG, then environment variables (a .env file is read first
// if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("PLANTCARE_CONFIG"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML overlays the file at path onto c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides c with environment variables.
func (c *Config) applyEnv() error {
	var err error
	if c.Port, err = getEnvInt("PORT", c.Port); err != nil {
		return err
	}
	if c.Debug, err = getEnvBool("DEBUG", c.Debug); err != nil {
		return err
	}
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	if c.TokenTTL, err = getEnvDuration("TOKEN_TTL", c.TokenTTL); err != nil {
		return err
	}

	c.DB.Driver = getEnv("DB_DRIVER", c.DB.Driver)
	c.DB.Username = getEnv("DB_USER", c.DB.Username)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Hostname = getEnv("DB_HOST", c.DB.Hostname)
	c.DB.Name = getEnv("DB_NAME", c.DB.Name)
	c.DB.Path = getEnv("DB_PATH", c.DB.Path)

	c.Catalog.Source = getEnv("CATALOG_SOURCE", c.Catalog.Source)
	c.Catalog.Path = getEnv("CATALOG_PATH", c.Catalog.Path)
	c.Catalog.URL = getEnv("CATALOG_URL", c.Catalog.URL)
	if c.Catalog.CacheTTL, err = getEnvDuration("CATALOG_CACHE_TTL", c.Catalog.CacheTTL); err != nil {
		return err
	}
	if c.Catalog.Timeout, err = getEnvDuration("CATALOG_TIMEOUT", c.Catalog.Timeout); err != nil {
		return err
	}
	return nil
}

// Validate checks enumerated settings and required values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.DB.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.Catalog.Source {
	case CatalogFile:
		if c.Catalog.Path == "" {
			return errors.New("CATALOG_PATH must be set for the file catalog source")
		}
	case CatalogURL:
		if c.Catalog.URL == "" {
			return errors.New("CATALOG_URL must be set for the url catalog source")
		}
	case CatalogDB:
	default:
		return fmt.Errorf("unsupported CATALOG_SOURCE %q", c.Catalog.Source)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	return nil
}

// DSN returns the driver-specific connection string.
func (c *Config) DSN() string {
	if c.DB.Driver == DriverSQLite {
		return c.DB.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4",
		c.DB.Username, c.DB.Password, c.DB.Hostname, c.DB.Name)
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv returns the variable or defaultValue when unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer variable.
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// getEnvBool parses a boolean variable.
func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return b, nil
}

// getEnvDuration parses a duration such as "30s".
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}
