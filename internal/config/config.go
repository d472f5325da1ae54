// internal/config/config.go
//
// Runtime configuration.
//
// Sources, lowest to highest precedence:
//   1. Defaults below.
//   2. An optional YAML config file (--config).
//   3. Environment variables, after loading a .env file if one exists
//      (PORT, LOG_LEVEL, SESSION_SECRET, SESSION_TTL, DB_PATH,
//      CLIENT_ORIGIN, PUBLIC_URL, LOG_FILE).
//   4. Command-line flags bound by the caller with BindPFlag.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DevSecret is the fallback session secret. Fine locally, never in production.
const DevSecret = "dev_secret_change_me"

type Config struct {
	Port          string        `mapstructure:"port"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFile       string        `mapstructure:"log_file"`
	PublicURL     string        `mapstructure:"public_url"`
	ClientOrigin  string        `mapstructure:"client_origin"`
	SessionSecret string        `mapstructure:"session_secret"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	DBPath        string        `mapstructure:"db_path"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", "5175")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("public_url", "")
	v.SetDefault("client_origin", "http://localhost:5173")
	v.SetDefault("session_secret", DevSecret)
	v.SetDefault("session_ttl", "24h")
	v.SetDefault("db_path", "")
	v.AutomaticEnv()
	return v
}

// Load reads .env, then file (if non-empty), and decodes v into a Config.
func Load(v *viper.Viper, file string) (*Config, error) {
	_ = godotenv.Load()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.SessionSecret == "" {
		return errors.New("session_secret must not be empty")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }

// Level returns the parsed log level; validate has already checked it.
func (c *Config) Level() zerolog.Level {
	lvl, _ := zerolog.ParseLevel(c.LogLevel)
	return lvl
}
