package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load populates cfg from environment variables, reading a .env file from
// the working directory once per process if one exists. Validation is left
// to the server so that startup reports it uniformly.
func Load(cfg *Config) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// MustLoad is Load that panics on failure, for use during startup.
func MustLoad(cfg *Config) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
