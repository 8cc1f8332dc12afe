package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/adpilot/admanager/internal/config/configs"
)

// Config aggregates every configuration section of the application. Fields
// are populated from environment variables via caarlos0/env; nested structs
// carry an envPrefix so their fields are parsed with that prefix. Defaults
// live on the individual section types in the configs package.
type Config struct {
	// Env names the deployment environment (dev, test, prod). It controls
	// gin mode and logger verbosity.
	Env string `env:"APP_ENV" envDefault:"dev"`

	HTTP  configs.HTTP     `envPrefix:"HTTP_"`
	Log   configs.Logger   `envPrefix:"LOG_"`
	Psql  configs.Postgres `envPrefix:"PSQL_"`
	JWT   configs.JWT      `envPrefix:"JWT_"`
	CORS  configs.CORS     `envPrefix:"CORS_"`
	Redis configs.Redis    `envPrefix:"REDIS_"`
	Otel  configs.Otel     `envPrefix:"OTEL_"`
	// Upload controls where profile avatars are written and served from.
	Upload configs.Upload `envPrefix:"UPLOAD_"`
}

// Load reads configuration from environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithTimeout is a small helper for bounded database calls in handlers.
func WithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
