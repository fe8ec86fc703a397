package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Expense Control"`
		Port     int    `envconfig:"PORT" default:"3001"`
		Env      string `envconfig:"APP_ENV" default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host           string `envconfig:"DB_HOST" default:"localhost"`
		Port           int    `envconfig:"DB_PORT" default:"5432"`
		User           string `envconfig:"DB_USER" default:"postgres"`
		Password       string `envconfig:"DB_PASSWORD" default:""`
		Name           string `envconfig:"DB_NAME" default:"expense_control"`
		SSLMode        string `envconfig:"DB_SSLMODE" default:"disable"`
		SkipMigrations bool   `envconfig:"DB_SKIP_MIGRATIONS" default:"false"`
	}

	Server struct {
		Timeout            time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Client struct {
		APIURL    string        `envconfig:"API_URL" default:"http://localhost:3001/api"`
		CacheTTL  time.Duration `envconfig:"CLIENT_CACHE_TTL" default:"5m"`
		CacheSize int           `envconfig:"CLIENT_CACHE_SIZE" default:"128"`
	}
}

// IsDevelopment reports whether detailed errors may be exposed to callers.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == EnvDevelopment
}

func (c *Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     c.DB.Name,
		RawQuery: url.Values{"sslmode": {c.DB.SSLMode}}.Encode(),
	}

	return u.String()
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.App.Env != EnvDevelopment && cfg.App.Env != EnvProduction {
		return nil, fmt.Errorf("invalid APP_ENV %q: must be %s or %s", cfg.App.Env, EnvDevelopment, EnvProduction)
	}

	if cfg.Client.CacheSize < 1 {
		return nil, fmt.Errorf("invalid CLIENT_CACHE_SIZE %d: must be positive", cfg.Client.CacheSize)
	}

	return &cfg, nil
}
