// Package config loads application configuration from the environment, with
// an optional YAML file underneath (ENV > YAML > defaults).
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the application configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr" env:"NVCPRACTICE_LISTEN_ADDR" env-default:"127.0.0.1:8080"`
	DBPath     string `yaml:"db_path" env:"NVCPRACTICE_DB_PATH" env-default:"nvcpractice.db"`
}

// Load reads configuration from an optional YAML file and environment
// variables. The file path comes from CONFIG_PATH (fallback "./config.yaml");
// when the fallback file does not exist, ENV and defaults alone apply. An
// explicitly set CONFIG_PATH pointing at a missing file is an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}
