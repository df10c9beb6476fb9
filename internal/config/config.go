package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort           int           `envconfig:"HTTP_PORT" default:"7860"`
	DBPath             string        `envconfig:"DB_PATH" default:"webchat.db"`
	BadgerPath         string        `envconfig:"BADGER_PATH" default:"webchat-messages"`
	SessionSecret      string        `envconfig:"SESSION_SECRET" required:"true"`
	ChatHistoryLimit   int           `envconfig:"CHAT_HISTORY_LIMIT" default:"100"`
	PresenceWindow     time.Duration `envconfig:"PRESENCE_WINDOW" default:"120s"`
	SendLimitPerMinute int           `envconfig:"SEND_LIMIT_PER_MINUTE" default:"60"`
	SendBurst          int           `envconfig:"SEND_BURST" default:"10"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`
	ReadTimeout        time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout       time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return &cfg, nil
}

// SlogLevel converts the configured LOG_LEVEL string to a slog.Level.
// Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
