package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Load layers the file at path (if any) and the environment over [Default],
// then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnvOverrides overrides config values with HAUK_* environment variables
// if set. invalid values fail the load.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HAUK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HAUK_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("HAUK_READ_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HAUK_READ_TIMEOUT %q: %w", v, err)
		}
		cfg.ReadTimeout = d
	}
	if v := os.Getenv("HAUK_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("HAUK_TLS_POLICY"); v != "" {
		cfg.TLSPolicy = v
	}
	if v := os.Getenv("HAUK_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("HAUK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HAUK_DNS_SERVER"); v != "" {
		cfg.DNS.Server = v
	}
	return nil
}
