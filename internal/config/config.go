// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"4000"`
	DBPath         string `env:"DB_PATH" envDefault:"taskpad.db"`
	SigningKeyPath string `env:"SIGNING_KEY_PATH" envDefault:"taskpad_signing_key.pem"`
	IssuerDomain   string `env:"ISSUER_DOMAIN" envDefault:"taskpad.local"`
	DenylistPath   string `env:"DENYLIST_PATH"`
	CORSOrigin     string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
