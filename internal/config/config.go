// Package config loads the process configuration from an optional YAML
// file plus CURIO_* environment overrides. Backend endpoint settings
// are validated once, at startup; a missing endpoint or key is a fatal
// configuration error, never a per-request one.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full process configuration.
type Config struct {
	Server  Server  `yaml:"server"`
	Backend Backend `yaml:"backend"`
	Redis   Redis   `yaml:"redis"`
	Cookie  Cookie  `yaml:"cookie"`
	Log     Log     `yaml:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr string `yaml:"addr"`
}

// Backend identifies the hosted auth + database service.
type Backend struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

// Redis configures the optional login limiter store. An empty address
// disables rate limiting.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Cookie configures the attributes applied to session cookies.
type Cookie struct {
	Path     string `yaml:"path"`
	Domain   string `yaml:"domain"`
	Secure   bool   `yaml:"secure"`
	SameSite string `yaml:"same_site"`
}

// Log configures application logging.
type Log struct {
	Level string `yaml:"level"`
}

func defaults() Config {
	return Config{
		Server: Server{Addr: ":8080"},
		Cookie: Cookie{Path: "/", SameSite: "lax"},
		Log:    Log{Level: "info"},
	}
}

// Load reads the file at path (when it exists), applies environment
// overrides, and validates the result. A missing file is fine; a
// missing backend URL or key is not.
func Load(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only configuration is a supported deployment mode.
	default:
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv lets the hosting environment override file values; the
// backend credentials in particular usually arrive this way.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CURIO_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CURIO_BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("CURIO_BACKEND_KEY"); v != "" {
		cfg.Backend.Key = v
	}
	if v := os.Getenv("CURIO_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("CURIO_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
	if v := os.Getenv("CURIO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate enforces the presence of the backend endpoint settings.
func (c Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend url is required (set backend.url or CURIO_BACKEND_URL)")
	}
	if c.Backend.Key == "" {
		return fmt.Errorf("backend key is required (set backend.key or CURIO_BACKEND_KEY)")
	}
	return nil
}
