package config

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	ServerPort        string        `mapstructure:"SERVER_PORT"`
	GinMode           string        `mapstructure:"GIN_MODE"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	LogFormat         string        `mapstructure:"LOG_FORMAT"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	DBSlowThreshold   time.Duration `mapstructure:"DB_SLOW_THRESHOLD"`
	ShutdownTimeout   time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	MigrateOnStart    bool          `mapstructure:"MIGRATE_ON_START"`
}

var defaults = map[string]any{
	"DATABASE_URL":         "",
	"SERVER_PORT":          "8080",
	"GIN_MODE":             "debug",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "text",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    5,
	"DB_CONN_MAX_LIFETIME": 30 * time.Minute,
	"DB_SLOW_THRESHOLD":    200 * time.Millisecond,
	"SHUTDOWN_TIMEOUT":     10 * time.Second,
	"MIGRATE_ON_START":     true,
}

// LoadConfig loads the configuration from a .env file in path and from
// environment variables, which take precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// AutomaticEnv only resolves keys viper already knows about.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Warn(".env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.ServerPort == "" {
		return errors.New("SERVER_PORT must not be empty")
	}
	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
