// Package config loads the optional client configuration file. Flags
// and environment variables override file values, which override the
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/haymini/hayctl/internal/api"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "10s" or "1m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// Config holds client settings read from ~/.hayctl/config.yaml.
type Config struct {
	BaseURL  string   `yaml:"base_url"`
	Timeout  Duration `yaml:"timeout"`
	CacheDir string   `yaml:"cache_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL: api.DefaultBaseURL,
		Timeout: Duration(api.DefaultTimeout),
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hayctl", "config.yaml"), nil
}

// Load reads the config file at path. A missing file is not an error;
// the defaults are returned. Fields absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = api.DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = Duration(api.DefaultTimeout)
	}

	log.Debug().Str("path", path).Str("baseURL", cfg.BaseURL).Msg("config loaded")

	return cfg, nil
}
