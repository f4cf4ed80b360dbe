package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"golang.org/x/text/language"
)

// Config is shared by the CLI commands and the `petly serve` ui-api server
type Config struct {
	Environment  string        `env:"ENVIRONMENT,default=dev"`
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         int           `env:"PORT,default=3000"`
	LogLevel     string        `env:"LOG_LEVEL,default=info"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=60s"`

	APIBaseURL  string        `env:"API_BASE_URL,default=http://localhost:4000/api"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT,default=0s"` // 0 = no timeout
	Locale      string        `env:"LOCALE,default=pt-BR"`

	SessionBackend   string `env:"SESSION_BACKEND,default=file"`
	SessionDir       string `env:"SESSION_DIR"` // defaults to <user config dir>/petly
	SessionSecret    string `env:"SESSION_SECRET"`
	RedisURL         string `env:"REDIS_URL"`
	SessionKeyPrefix string `env:"SESSION_KEY_PREFIX"`
	DatabaseURL      string `env:"DATABASE_URL"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS,separator=|"` // cross-origin frontends, none by default
	RateLimitRPS   int32    `env:"RATE_LIMIT_RPS,default=20"`   // 0 disables rate limiting
	RateLimitBurst int32    `env:"RATE_LIMIT_BURST,default=40"`
}

// session storage backends
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"staging": true,
	"prod":    true,
}

var validBackends = map[string]bool{
	BackendFile:     true,
	BackendRedis:    true,
	BackendPostgres: true,
	BackendMemory:   true,
}

func NewConfig() (*Config, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}
	if cfg.HTTPTimeout < 0 {
		return fmt.Errorf("http timeout can't be negative, got %v", cfg.HTTPTimeout)
	}

	if cfg.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL cannot be empty")
	}
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) url, got '%s'", cfg.APIBaseURL)
	}

	if _, err := language.Parse(cfg.Locale); err != nil {
		return fmt.Errorf("invalid LOCALE '%s': %w", cfg.Locale, err)
	}

	if !validBackends[cfg.SessionBackend] {
		return fmt.Errorf("invalid SESSION_BACKEND '%s'. Valid backends: file, redis, postgres, memory", cfg.SessionBackend)
	}
	switch cfg.SessionBackend {
	case BackendRedis:
		if cfg.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_BACKEND=redis")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SESSION_BACKEND=postgres")
		}
	}

	if cfg.Environment == "prod" && cfg.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required in prod")
	}

	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS can't be negative, got %d", cfg.RateLimitRPS)
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled, got %d", cfg.RateLimitBurst)
	}

	// the ui-api acts with the stored session, so every cross-origin caller must be named.
	// Without ALLOWED_ORIGINS only same-origin pages can use it
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			return fmt.Errorf("ALLOWED_ORIGINS must not be set to '*', list the frontend origins instead")
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
			return fmt.Errorf("ALLOWED_ORIGINS entries must be scheme://host[:port], got '%s'", origin)
		}
		origins = append(origins, origin)
	}
	cfg.AllowedOrigins = origins

	return nil
}

// ListenAddr returns the host:port the ui-api server listens on
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DefaultSessionDir is used by the file backend when SESSION_DIR is not set
func DefaultSessionDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine the user config directory, set SESSION_DIR: %w", err)
	}
	return filepath.Join(dir, "petly"), nil
}
