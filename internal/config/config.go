package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends accepted for store.backend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	Store    StoreConfig
	Database DatabaseConfig
	File     FileConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Log      LogConfig
	UI       UIConfig
}

// StoreConfig picks where the remembered session lives.
type StoreConfig struct {
	Backend string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// FileConfig holds the JSON session file location.
type FileConfig struct {
	Path string
}

// RedisConfig holds redis settings.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string `mapstructure:"key_prefix"`
	TTL       time.Duration
}

// CatalogConfig points at an optional catalog override.
type CatalogConfig struct {
	Path string
}

// LogConfig holds logger settings. An empty File means stderr.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "drogafarm")
}

func configPath() string {
	if p := os.Getenv("DROGAFARM_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "drogafarm", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix DROGAFARM_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("database.path", filepath.Join(dataDir(), "drogafarm.db"))
	v.SetDefault("file.path", filepath.Join(dataDir(), "session.json"))
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "drogafarm")
	v.SetDefault("redis.ttl", "0s")
	v.SetDefault("catalog.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(dataDir(), "drogafarm.log"))
	v.SetDefault("ui.currency_symbol", "R$")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("DROGAFARM_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "drogafarm"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DROGAFARM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendRedis, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("config: unknown store.backend %q", c.Store.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log.format %q", c.Log.Format)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("database.path", cfg.Database.Path)
	v.Set("file.path", cfg.File.Path)
	v.Set("redis.addr", cfg.Redis.Addr)
	v.Set("redis.password", cfg.Redis.Password)
	v.Set("redis.db", cfg.Redis.DB)
	v.Set("redis.key_prefix", cfg.Redis.KeyPrefix)
	v.Set("redis.ttl", cfg.Redis.TTL.String())
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.file", cfg.Log.File)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
