// Package config loads crudadmin settings from a YAML file, a .env file and
// the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all crudadmin configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
	Server  ServerConfig  `yaml:"server"`
}

// APIConfig points the client at the REST backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"` // Go duration, e.g. "10s"
	// CredentialsDir holds credentials.json; empty means ~/.crudadmin.
	CredentialsDir string `yaml:"credentials_dir"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty: user cache dir
}

// UIConfig configures terminal output.
type UIConfig struct {
	Theme string `yaml:"theme"` // classic, neon, mono
}

// ServerConfig configures the development backend.
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	DataFile string `yaml:"data_file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000",
			Timeout: "10s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			Theme: "classic",
		},
		Server: ServerConfig{
			Addr:     ":3000",
			DataFile: "records.json",
		},
	}
}

// DefaultPath returns ~/.config/crudadmin/config.yaml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "crudadmin", "config.yaml"), nil
}

// Load reads path on top of the defaults. A missing file is not an error.
// Environment overrides are applied afterwards, including values from a .env
// file in the working directory.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// .env is optional; existing environment variables win over it.
	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.API.BaseURL, "CRUDADMIN_API_URL")
	set(&c.API.Timeout, "CRUDADMIN_API_TIMEOUT")
	set(&c.API.CredentialsDir, "CRUDADMIN_CREDENTIALS_DIR")
	set(&c.Logging.Level, "CRUDADMIN_LOG_LEVEL")
	set(&c.Logging.File, "CRUDADMIN_LOG_FILE")
	set(&c.UI.Theme, "CRUDADMIN_THEME")
	set(&c.Server.Addr, "CRUDADMIN_ADDR")
	set(&c.Server.DataFile, "CRUDADMIN_DATA")
}

// Validate checks the values a running client depends on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// RequestTimeout parses api.timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("api.timeout must be a positive duration, got %q", c.API.Timeout)
	}
	return d, nil
}

// LogFile returns the configured log file or crudadmin.log in the user cache dir.
func (c *Config) LogFile() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}
	return filepath.Join(dir, "crudadmin", "crudadmin.log"), nil
}
