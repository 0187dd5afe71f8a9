// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix     = "COLLEGE_"
	EnvConfigFile = "COLLEGE_CONFIG"
	// EnvDatabaseURL is the Prisma connection string, used when no
	// COLLEGE_DATABASE_URL or config file value is set.
	EnvDatabaseURL = "DATABASE_URL"
)

// Config represents the CLI configuration. Every field has a default; a YAML
// file and COLLEGE_* environment variables override them, and CLI flags
// override both.
type Config struct {
	DatabaseURL   string `koanf:"database_url"`   // postgres:// or file:/sqlite: URL
	ReferencePath string `koanf:"reference_path"` // YAML reference data; empty uses the embedded defaults
	ReportPath    string `koanf:"report_path" validate:"required"`
	ReportSchema  string `koanf:"report_schema"` // JSON schema the written report is checked against
	MetricsFile   string `koanf:"metrics_file"`  // Prometheus textfile output; empty disables it

	PassThreshold int    `koanf:"pass_threshold" validate:"gte=0,lte=100"`
	Workers       int    `koanf:"workers" validate:"gte=0"`
	LogLevel      string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// Console report limits
	FailingLimit int `koanf:"failing_limit" validate:"gte=0"`
	WarningLimit int `koanf:"warning_limit" validate:"gte=0"`
	IssueLimit   int `koanf:"issue_limit" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ReportPath:    filepath.Join(os.TempDir(), "college-validation-results.json"),
		ReportSchema:  "schemas/validation_report.schema.json",
		PassThreshold: 80,
		LogLevel:      "info",
		FailingLimit:  50,
		WarningLimit:  5,
		IssueLimit:    20,
	}
}

// Load builds a Config by layering defaults, an optional YAML file and
// environment variables, lowest precedence first. path names the YAML file;
// when empty, COLLEGE_CONFIG is consulted.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to load config file", Cause: err}
		}
	}

	// COLLEGE_PASS_THRESHOLD -> pass_threshold
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to load environment", Cause: err}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to decode config", Cause: err}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values. The database URL
// is not required here since only store-backed commands need it.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.ReferencePath != "" {
		if _, err := os.Stat(c.ReferencePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: reference file not found: %s", c.ReferencePath)
		}
	}
	return nil
}

// LoadError describes a configuration source that could not be loaded.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
