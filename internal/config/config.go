package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/iamlucasvieira/zero2prod/internal/pkg/emailsyntax"
	"github.com/iamlucasvieira/zero2prod/internal/pkg/logger"
)

// Config holds all configuration for the application
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Database   DatabaseConfig   `yaml:"database"`
}

// ValidationConfig selects the email syntax rule set.
type ValidationConfig struct {
	RuleSet string `yaml:"rule_set"` // html5, rfc5322 or simple
}

// Predicate returns the syntax predicate for the configured rule set.
func (c ValidationConfig) Predicate() (func(string) bool, error) {
	return emailsyntax.ForRuleSet(c.RuleSet)
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"` // nil means the default (true)
}

// GetLevel parses Level, falling back to INFO when it is unset.
func (c LoggingConfig) GetLevel() (logger.Level, error) {
	return logger.ParseLevel(c.Level)
}

// ShouldRedactPII reports whether email addresses are masked in logs.
func (c LoggingConfig) ShouldRedactPII() bool {
	return c.RedactPII == nil || *c.RedactPII
}

// DatabaseConfig points at the subscriptions store audited by
// verify-subscribers. An empty URL disables the database source.
type DatabaseConfig struct {
	URL   string `yaml:"url"`
	Table string `yaml:"table"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Validation.RuleSet == "" {
		cfg.Validation.RuleSet = string(emailsyntax.Default)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Database.Table == "" {
		cfg.Database.Table = "subscriptions"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so local settings can live in .env and real env vars win in deployment.
// An empty path starts from Defaults instead of a file.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg := Defaults()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("SUBSCRIBER_EMAIL_RULE_SET"); v != "" {
		cfg.Validation.RuleSet = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_REDACT_PII"); v != "" {
		redact, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_REDACT_PII: %w", err)
		}
		cfg.Logging.RedactPII = &redact
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every named setting refers to something that exists.
func (c *Config) Validate() error {
	if _, err := c.Validation.Predicate(); err != nil {
		return fmt.Errorf("validation.rule_set: %w", err)
	}
	if _, err := c.Logging.GetLevel(); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
