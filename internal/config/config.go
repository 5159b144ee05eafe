package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	DeepSeek DeepSeekConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"5000"`
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// DeepSeekConfig points the completion client at an OpenAI-compatible endpoint.
// APIKey may be empty; parse requests then fail with a configuration error.
type DeepSeekConfig struct {
	APIKey     string        `envconfig:"DEEPSEEK_API_KEY"`
	Endpoint   string        `envconfig:"DEEPSEEK_ENDPOINT" default:"https://api.deepseek.com"`
	Model      string        `envconfig:"DEEPSEEK_MODEL" default:"deepseek-chat"`
	Timeout    time.Duration `envconfig:"DEEPSEEK_TIMEOUT" default:"30s"`
	MaxRetries int           `envconfig:"DEEPSEEK_MAX_RETRIES" default:"2"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// APIKeyConfigured reports whether a non-empty credential was supplied.
func (c DeepSeekConfig) APIKeyConfigured() bool {
	return c.APIKey != ""
}

// MaskedKey returns the first eight characters of the key for startup logs.
func (c DeepSeekConfig) MaskedKey() string {
	if len(c.APIKey) <= 8 {
		return strings.Repeat("*", len(c.APIKey))
	}
	return c.APIKey[:8] + "..."
}

// LoadConfig reads the environment, after merging any .env files found in the
// working directory. Variables already set in the environment win.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		slog.Debug("No .env file found")
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
