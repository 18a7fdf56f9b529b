package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultPath = "./config.yaml"

// Load reads the configuration named by CONFIG_PATH, or ./config.yaml when
// that is unset, then applies ENV over YAML over env-default tags.
// A missing default file is fine and leaves ENV and defaults only; a
// missing CONFIG_PATH file is an error.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return LoadFile(path, true)
	}
	return LoadFile(defaultPath, false)
}

// LoadFile loads and validates the configuration at path. With required
// false an absent file falls back to ENV and defaults.
func LoadFile(path string, required bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Usage writes every environment variable the server reads, with its
// default, for the -help output of the commands.
func Usage(w io.Writer) {
	var cfg Config
	header := "Configuration is read from CONFIG_PATH (default " + defaultPath + ") and these variables:"
	cleanenv.FUsage(w, &cfg, &header)()
}
