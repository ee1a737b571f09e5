// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/careerforge/internal/llm"
	"github.com/jonathan/careerforge/internal/store"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config aggregates settings sourced from an optional config file and the environment.
// Environment variables win over file values; CLI flags win over both.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	Autosave AutosaveConfig `mapstructure:"autosave"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Export   ExportConfig   `mapstructure:"export"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// StoreConfig selects where the resume document is persisted.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	Key     string `mapstructure:"key"`
	// MemoryLimit caps the in-memory backend in bytes; 0 means unlimited
	MemoryLimit int `mapstructure:"memory_limit"`
}

// AutosaveConfig tunes the debounced writer.
type AutosaveConfig struct {
	Delay        time.Duration `mapstructure:"delay"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// RedisConfig contains connection options for the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// DatabaseConfig contains connection options for the postgres backend.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// GeminiConfig configures the LinkedIn content generator.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ExportConfig controls where published bundles go. MinIO is used when its
// endpoint is set, the local directory otherwise.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint         string        `mapstructure:"endpoint"`
	AccessKeyID      string        `mapstructure:"access_key_id"`
	SecretAccessKey  string        `mapstructure:"secret_access_key"`
	UseSSL           bool          `mapstructure:"use_ssl"`
	Bucket           string        `mapstructure:"bucket"`
	Region           string        `mapstructure:"region"`
	Prefix           string        `mapstructure:"prefix"`
	AutoCreateBucket bool          `mapstructure:"auto_create_bucket"`
	PresignExpiry    time.Duration `mapstructure:"presign_expiry"`
}

// Load reads configuration from path (JSON or YAML, optional) and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.dir", ".careerforge")
	v.SetDefault("store.key", store.DefaultKey)
	v.SetDefault("store.memory_limit", 5*1024*1024)
	v.SetDefault("autosave.delay", time.Second)
	v.SetDefault("autosave.write_timeout", 10*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.prefix", "careerforge:")
	v.SetDefault("gemini.model", llm.DefaultModel)
	v.SetDefault("export.dir", "exports")
	v.SetDefault("minio.bucket", "resumes")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("minio.presign_expiry", 15*time.Minute)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"server.port":              "PORT",
		"log.level":                "LOG_LEVEL",
		"log.development":          "LOG_DEVELOPMENT",
		"store.backend":            "STORE_BACKEND",
		"store.dir":                "STORE_DIR",
		"store.key":                "STORE_KEY",
		"store.memory_limit":       "STORE_MEMORY_LIMIT",
		"autosave.delay":           "AUTOSAVE_DELAY",
		"autosave.write_timeout":   "AUTOSAVE_WRITE_TIMEOUT",
		"redis.addr":               "REDIS_ADDR",
		"redis.password":           "REDIS_PASSWORD",
		"redis.db":                 "REDIS_DB",
		"redis.prefix":             "REDIS_PREFIX",
		"database.url":             "DATABASE_URL",
		"gemini.api_key":           "GEMINI_API_KEY",
		"gemini.model":             "GEMINI_MODEL",
		"export.dir":               "EXPORT_DIR",
		"minio.endpoint":           "MINIO_ENDPOINT",
		"minio.access_key_id":      "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":  "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":            "MINIO_USE_SSL",
		"minio.bucket":             "MINIO_BUCKET",
		"minio.region":             "MINIO_REGION",
		"minio.prefix":             "MINIO_PREFIX",
		"minio.auto_create_bucket": "MINIO_AUTO_CREATE_BUCKET",
		"minio.presign_expiry":     "MINIO_PRESIGN_EXPIRY",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

// Validate checks that the configuration has usable values.
// A missing Gemini key is not an error; generation requests report it instead.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: server port %d out of range", c.Server.Port)
	}
	if c.Store.Key == "" {
		return errors.New("config error: store key is required")
	}
	if c.Store.MemoryLimit < 0 {
		return errors.New("config error: store memory limit must be non-negative")
	}
	if c.Autosave.Delay <= 0 {
		return errors.New("config error: autosave delay must be positive")
	}
	if c.Autosave.WriteTimeout <= 0 {
		return errors.New("config error: autosave write timeout must be positive")
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Dir == "" {
			return errors.New("config error: store dir is required for the file backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("config error: redis addr is required for the redis backend")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			return errors.New("config error: DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config error: unknown store backend %q", c.Store.Backend)
	}

	if c.MinIO.Endpoint != "" && c.MinIO.Bucket == "" {
		return errors.New("config error: minio bucket is required when an endpoint is set")
	}
	return nil
}

// UseMinIO reports whether exports are published to object storage
func (c *Config) UseMinIO() bool {
	return c.MinIO.Endpoint != ""
}

// LLMConfig returns the generation client settings
func (c *Config) LLMConfig() *llm.Config {
	return llm.DefaultConfig().WithModel(c.Gemini.Model)
}
