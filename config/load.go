package config

import (
	"github.com/Gobusters/ectoenv"
	"github.com/joho/godotenv"
)

// Load reads .env if present, then binds environment variables onto the config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
