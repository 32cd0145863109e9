// Package config loads console settings from, in increasing precedence:
// a YAML file, a .env file, and the process environment. Command-line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variable names.
const (
	EnvBackendURL       = "LAMBDAGW_BACKEND_URL"
	EnvLegacyBackendURL = "NEXT_PUBLIC_BACKEND_URL"
	EnvLogFile          = "LAMBDAGW_LOG_FILE"
	EnvLogLevel         = "LAMBDAGW_LOG_LEVEL"
	EnvHTTPTimeout      = "LAMBDAGW_HTTP_TIMEOUT"
	EnvOTLPEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName      = "OTEL_SERVICE_NAME"
)

// DefaultServiceName is the service.name reported on traces.
const DefaultServiceName = "lambdagw"

// Config holds console settings.
type Config struct {
	BackendURL   string `yaml:"backend_url"`
	LogFile      string `yaml:"log_file"`
	LogLevel     string `yaml:"log_level"`
	HTTPTimeout  string `yaml:"http_timeout"` // Go duration; empty or "0" means none
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// DefaultPath returns $XDG_CONFIG_HOME/lambdagw/config.yaml (or the OS
// equivalent). Returns "" if no config dir can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lambdagw", "config.yaml")
}

// DefaultLogFile returns lambdagw.log in the user cache dir, falling back
// to the temp dir.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "lambdagw", "lambdagw.log")
}

// Load reads the YAML file at path (DefaultPath if empty; a missing file is
// not an error), then the given .env files (".env" if none; missing files
// are skipped), then environment overrides. The result is not validated;
// call Validate after applying flags.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	overrideFromEnv(&cfg.BackendURL, EnvLegacyBackendURL)
	overrideFromEnv(&cfg.BackendURL, EnvBackendURL)
	overrideFromEnv(&cfg.LogFile, EnvLogFile)
	overrideFromEnv(&cfg.LogLevel, EnvLogLevel)
	overrideFromEnv(&cfg.HTTPTimeout, EnvHTTPTimeout)
	overrideFromEnv(&cfg.OTLPEndpoint, EnvOTLPEndpoint)
	overrideFromEnv(&cfg.ServiceName, EnvServiceName)

	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	return cfg, nil
}

// Validate checks the settings and normalizes BackendURL (no trailing slash).
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend URL is required (set %s or -backend)", EnvBackendURL)
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("backend URL %q: %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend URL %q: scheme must be http or https", c.BackendURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend URL %q: missing host", c.BackendURL)
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout returns the parsed HTTP timeout; zero means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.HTTPTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 0, fmt.Errorf("http timeout %q: %w", c.HTTPTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("http timeout %q: must not be negative", c.HTTPTimeout)
	}
	return d, nil
}

func overrideFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
