package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name    string `envconfig:"APP_NAME" default:"FilingDesk"`
		Port    int    `envconfig:"PORT" default:"8080"`
		BaseURL string `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"filingdesk"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Scheduler struct {
		Interval     time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
		WarmUp       time.Duration `envconfig:"SWEEP_WARMUP" default:"30s"`
		AbandonAfter time.Duration `envconfig:"ABANDON_AFTER" default:"168h"`
	}

	Email struct {
		Enabled bool   `envconfig:"EMAIL_ENABLED" default:"false"`
		Region  string `envconfig:"AWS_REGION" default:"us-east-1"`
		From    string `envconfig:"EMAIL_FROM" default:"no-reply@filingdesk.local"`
	}

	Admin struct {
		JWTSecret      string   `envconfig:"ADMIN_JWT_SECRET"`
		AllowedOrigins []string `envconfig:"ADMIN_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Cache struct {
		Size int           `envconfig:"STATS_CACHE_SIZE" default:"128"`
		TTL  time.Duration `envconfig:"STATS_CACHE_TTL" default:"5m"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Scheduler.Interval <= 0 {
		return nil, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", cfg.Scheduler.Interval)
	}

	return &cfg, nil
}
