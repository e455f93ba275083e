// Package config loads the service configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"churnpredict/ml"
)

// Environment overrides.
const (
	EnvConfigPath = "CHURN_CONFIG"
	EnvModelPath  = "CHURN_MODEL_PATH"
	EnvHTTPPort   = "CHURN_HTTP_PORT"
	EnvLogLevel   = "CHURN_LOG_LEVEL"
)

// DefaultPath is used when neither a flag nor CHURN_CONFIG names a file.
const DefaultPath = "config.yaml"

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Model     ModelConfig     `yaml:"model"`
	Display   DisplayConfig   `yaml:"display"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port"`
	Timeout        time.Duration `yaml:"timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type ModelConfig struct {
	Path string `yaml:"path"`
}

// DisplayConfig controls how results are presented. It is the only section
// reloaded while the service runs.
type DisplayConfig struct {
	DeriveTotalCharges bool          `yaml:"derive_total_charges"`
	ShowRiskTier       bool          `yaml:"show_risk_tier"`
	ResponseDelay      time.Duration `yaml:"response_delay"`
	Locale             string        `yaml:"locale"`
}

// Options returns the pipeline options for this display section.
func (d DisplayConfig) Options() ml.Options {
	return ml.Options{
		DeriveTotalCharges: d.DeriveTotalCharges,
		ShowRiskTier:       d.ShowRiskTier,
	}
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	MaxClients        int `yaml:"max_clients"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the configuration used for keys a file leaves out.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:           8080,
			Timeout:        30 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Model: ModelConfig{Path: "models/churn_model.json"},
		Display: DisplayConfig{
			DeriveTotalCharges: true,
			ShowRiskTier:       true,
			Locale:             "en",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 120,
			MaxClients:        1024,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads path, applies environment overrides and validates the result.
// A missing file is not an error; defaults and environment are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	payload, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(payload, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvModelPath); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv(EnvHTTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHTTPPort, err)
		}
		cfg.HTTP.Port = port
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("http.port %d out of range", c.HTTP.Port))
	}
	if c.HTTP.Timeout <= 0 {
		err = multierr.Append(err, errors.New("http.timeout must be positive"))
	}
	if c.Model.Path == "" {
		err = multierr.Append(err, errors.New("model.path is required"))
	}
	err = multierr.Append(err, c.Display.Validate())
	if c.HTTP.Timeout > 0 && c.Display.ResponseDelay >= c.HTTP.Timeout {
		err = multierr.Append(err, fmt.Errorf("display.response_delay %s must be shorter than http.timeout %s",
			c.Display.ResponseDelay, c.HTTP.Timeout))
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		err = multierr.Append(err, errors.New("rate_limit.requests_per_minute must not be negative"))
	}
	if c.RateLimit.RequestsPerMinute > 0 && c.RateLimit.MaxClients <= 0 {
		err = multierr.Append(err, errors.New("rate_limit.max_clients must be positive"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("log.format %q must be json or console", c.Log.Format))
	}
	return err
}

func (d DisplayConfig) Validate() error {
	var err error
	if d.ResponseDelay < 0 {
		err = multierr.Append(err, errors.New("display.response_delay must not be negative"))
	}
	if _, perr := language.Parse(d.Locale); perr != nil {
		err = multierr.Append(err, fmt.Errorf("display.locale %q: %w", d.Locale, perr))
	}
	return err
}
