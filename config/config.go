package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-streamline/aiworkflow/models"
	"github.com/spf13/viper"
)

const envPrefix = "AIWORKFLOW"

var (
	ErrInvalidConfig       = fmt.Errorf("invalid config")
	ErrFailedToReadConfig  = fmt.Errorf("failed to read config")
	ErrFailedToParseConfig = fmt.Errorf("failed to parse config")
)

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config is loaded once at startup and handed to every component that needs it.
type Config struct {
	App      App      `mapstructure:"app"`
	Database Database `mapstructure:"database"`
	Log      Log      `mapstructure:"log"`
	Cache    Cache    `mapstructure:"cache"`
	Sentry   Sentry   `mapstructure:"sentry"`
}

type App struct {
	Name            string        `mapstructure:"name"`
	Version         string        `mapstructure:"version"`
	Environment     string        `mapstructure:"environment"`
	Debug           bool          `mapstructure:"debug"`
	APIPrefix       string        `mapstructure:"api_prefix"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	DefaultOwner    string        `mapstructure:"default_owner"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (a App) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

func (a App) IsProduction() bool {
	return a.Environment == EnvProduction
}

func (a App) IsDevelopment() bool {
	return a.Environment == EnvDevelopment
}

type Database struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxIdleConn     int           `mapstructure:"max_idle_conn"`
	MaxOpenConn     int           `mapstructure:"max_open_conn"`
	PoolTimeout     time.Duration `mapstructure:"pool_timeout"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogSQL          bool          `mapstructure:"log_sql"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

type Log struct {
	Level        string `mapstructure:"level"`
	Filename     string `mapstructure:"filename"`
	MaxSizeMB    int    `mapstructure:"max_size_mb"`
	MaxAgeDays   int    `mapstructure:"max_age_days"`
	MaxBackups   int    `mapstructure:"max_backups"`
	Compress     bool   `mapstructure:"compress"`
	LogToConsole bool   `mapstructure:"log_to_console"`
}

// Cache configures the per-process read cache of records by id. Other replicas'
// writes are not seen until TTL expires, so enable it only for a single replica
// or when reads TTL old are acceptable.
type Cache struct {
	Enabled     bool          `mapstructure:"enabled"`
	NumCounters int64         `mapstructure:"num_counters"`
	MaxCost     int64         `mapstructure:"max_cost"`
	BufferItems int64         `mapstructure:"buffer_items"`
	TTL         time.Duration `mapstructure:"ttl"`
}

type Sentry struct {
	DSN              string  `mapstructure:"dsn"`
	TracesSampleRate float64 `mapstructure:"traces_sample_rate"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "AI WorkFlow")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.environment", EnvDevelopment)
	v.SetDefault("app.debug", false)
	v.SetDefault("app.api_prefix", "/api/v1")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8001)
	v.SetDefault("app.allowed_origins", []string{"*"})
	v.SetDefault("app.default_owner", models.DefaultOwner)
	v.SetDefault("app.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "app.db")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conn", 200)
	v.SetDefault("database.max_open_conn", 300)
	v.SetDefault("database.pool_timeout", 65*time.Second)
	v.SetDefault("database.conn_max_lifetime", 4*time.Hour)
	v.SetDefault("database.log_sql", false)
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)

	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.filename", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.compress", false)
	v.SetDefault("log.log_to_console", true)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.num_counters", 1000)
	v.SetDefault("cache.max_cost", 100)
	v.SetDefault("cache.buffer_items", 64)
	v.SetDefault("cache.ttl", 5*time.Second)

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.traces_sample_rate", 0.0)
}

// Load reads defaults, then the YAML file at path (or config.yaml in . and ./config
// when path is empty), then AIWORKFLOW_* environment variables.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", ErrFailedToReadConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("%w: app.environment must be one of development, staging, production, got %q", ErrInvalidConfig, c.App.Environment)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: cache.ttl must be positive when the cache is enabled", ErrInvalidConfig)
	}
	if c.App.DefaultOwner == "" {
		return fmt.Errorf("%w: app.default_owner is required", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return c.Database.Validate()
}

func (d Database) Validate() error {
	switch d.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("%w: database.driver %q is not supported", ErrInvalidConfig, d.Driver)
	}
	if d.DSN == "" && d.Host == "" {
		return fmt.Errorf("%w: database.dsn or database.host is required", ErrInvalidConfig)
	}
	if d.MaxOpenConn < 0 || d.MaxIdleConn < 0 {
		return fmt.Errorf("%w: database pool sizes must not be negative", ErrInvalidConfig)
	}
	return nil
}
