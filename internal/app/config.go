package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/pantrybook/pantry/pkg/tokenx"
)

// Config is the process configuration, loaded entirely from the environment.
// The token secret is required and deliberately has no default: the service
// refuses to start without one it can trust.
type Config struct {
	Port int    `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"dev"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	DatabaseFile string `env:"PANTRY_DATABASE_FILE" envDefault:"pantry.db"`
	PepperFile   string `env:"PANTRY_PEPPER_FILE" envDefault:"pantry.pepper"`

	TokenSecret string        `env:"PANTRY_TOKEN_SECRET,required,unset"`
	TokenTTL    time.Duration `env:"PANTRY_TOKEN_TTL" envDefault:"168h"`
	Issuer      string        `env:"PANTRY_ISSUER" envDefault:"pantryd"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig parses and validates the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if len(cfg.TokenSecret) < tokenx.MinSecretLength {
		return Config{}, fmt.Errorf("PANTRY_TOKEN_SECRET must be at least %d bytes", tokenx.MinSecretLength)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("PANTRY_TOKEN_TTL must be positive")
	}

	return cfg, nil
}

// Addr is the listen address derived from the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
