// Package config loads the server and CLI settings from an optional .env
// file, an optional YAML file and the environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Environment string `yaml:"environment" validate:"required"`
	Port        string `yaml:"port" validate:"required,numeric"`
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`

	Storage StorageConfig `yaml:"storage"`

	TemplatesDir   string `yaml:"templates_dir"`
	WatchTemplates bool   `yaml:"watch_templates"`

	ExportDir  string `yaml:"export_dir"`
	ChromePath string `yaml:"chrome_path"`

	AutosaveInterval time.Duration `yaml:"autosave_interval" validate:"gt=0"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver" validate:"oneof=file memory postgres redis"`
	DataDir     string `yaml:"data_dir" validate:"required_if=Driver file"`
	QuotaBytes  int64  `yaml:"quota_bytes" validate:"gte=0"`
	DatabaseURL string `yaml:"database_url" validate:"required_if=Driver postgres"`
	RedisURL    string `yaml:"redis_url" validate:"required_if=Driver redis"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Port:        "3000",
		LogLevel:    "info",
		Storage: StorageConfig{
			Driver:     DriverFile,
			DataDir:    "data",
			QuotaBytes: 5 << 20,
			RedisURL:   "redis://localhost:6379/0",
		},
		TemplatesDir:     "templates",
		AutosaveInterval: 30 * time.Second,
	}
}

// Load reads .env (if present), then yamlPath (if non-empty), then applies
// environment overrides and validates the result.
func Load(yamlPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Unable to read .env", "error", err)
	}

	cfg := DefaultConfig()
	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", c.LogLevel))

	c.Storage.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", c.Storage.Driver))
	c.Storage.DataDir = getEnv("DATA_DIR", c.Storage.DataDir)
	c.Storage.QuotaBytes = getEnvAsInt64("STORAGE_QUOTA_BYTES", c.Storage.QuotaBytes)
	c.Storage.DatabaseURL = getEnv("DATABASE_URL", c.Storage.DatabaseURL)
	c.Storage.RedisURL = getEnv("REDIS_URL", c.Storage.RedisURL)

	c.TemplatesDir = getEnv("TEMPLATES_DIR", c.TemplatesDir)
	c.WatchTemplates = getEnvAsBool("WATCH_TEMPLATES", c.WatchTemplates)
	c.ExportDir = getEnv("EXPORT_DIR", c.ExportDir)
	c.ChromePath = getEnv("CHROME_PATH", c.ChromePath)
	c.AutosaveInterval = getEnvAsDuration("AUTOSAVE_INTERVAL", c.AutosaveInterval)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
