package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Auth methods and output formats accepted by Validate.
const (
	AuthPrivateToken = "private-token"
	AuthOAuth        = "oauth"

	FormatCSV   = "csv"
	FormatTable = "table"
)

// Config holds application configuration.
// Follows Single Responsibility - only holds configuration data.
type Config struct {
	// GitLab configuration
	BaseURL    string `env:"GITLAB_BASE_URL" envDefault:"https://gitlab.com/api/v4"`
	Project    string `env:"GITLAB_PROJECT"`
	Token      string `env:"GITLAB_TOKEN"`
	AuthMethod string `env:"GITLAB_AUTH_METHOD" envDefault:"private-token"`

	// Collection tuning
	State    string `env:"CHURN_STATE" envDefault:"all"`
	PageSize int    `env:"CHURN_PAGE_SIZE" envDefault:"100"`

	// Report output
	Output string `env:"CHURN_OUTPUT" envDefault:"code-churn.csv"`
	Format string `env:"CHURN_FORMAT" envDefault:"csv"`

	HTTPTimeoutSeconds int  `env:"CHURN_HTTP_TIMEOUT" envDefault:"30"`
	Verbose            bool `env:"CHURN_VERBOSE" envDefault:"false"`
}

// fileConfig mirrors Config for the optional YAML file. Pointer fields
// distinguish "absent from the file" from an explicit zero value.
type fileConfig struct {
	BaseURL            *string `yaml:"base_url"`
	Project            *string `yaml:"project"`
	Token              *string `yaml:"token"`
	AuthMethod         *string `yaml:"auth_method"`
	State              *string `yaml:"state"`
	PageSize           *int    `yaml:"page_size"`
	Output             *string `yaml:"output"`
	Format             *string `yaml:"format"`
	HTTPTimeoutSeconds *int    `yaml:"http_timeout_seconds"`
	Verbose            *bool   `yaml:"verbose"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &cfg, nil
}

// ApplyFile overlays values from a YAML config file. Environment
// variables win over the file; the file wins over built-in defaults.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	apply(&c.BaseURL, fc.BaseURL, "GITLAB_BASE_URL")
	apply(&c.Project, fc.Project, "GITLAB_PROJECT")
	apply(&c.Token, fc.Token, "GITLAB_TOKEN")
	apply(&c.AuthMethod, fc.AuthMethod, "GITLAB_AUTH_METHOD")
	apply(&c.State, fc.State, "CHURN_STATE")
	apply(&c.PageSize, fc.PageSize, "CHURN_PAGE_SIZE")
	apply(&c.Output, fc.Output, "CHURN_OUTPUT")
	apply(&c.Format, fc.Format, "CHURN_FORMAT")
	apply(&c.HTTPTimeoutSeconds, fc.HTTPTimeoutSeconds, "CHURN_HTTP_TIMEOUT")
	apply(&c.Verbose, fc.Verbose, "CHURN_VERBOSE")

	return nil
}

// apply copies a file-provided value unless the environment variable
// already set the field.
func apply[T any](dst *T, src *T, envVar string) {
	if src == nil {
		return
	}

	if _, set := os.LookupEnv(envVar); set {
		return
	}

	*dst = *src
}

// Validate checks that the configuration is usable for a run.
func (c *Config) Validate() error {
	if c.Project == "" {
		return errors.New("project is required (GITLAB_PROJECT)")
	}

	if c.Token == "" {
		return errors.New("token is required (GITLAB_TOKEN)")
	}

	if c.AuthMethod != AuthPrivateToken && c.AuthMethod != AuthOAuth {
		return fmt.Errorf("unknown auth method %q", c.AuthMethod)
	}

	if c.Format != FormatCSV && c.Format != FormatTable {
		return fmt.Errorf("unknown output format %q", c.Format)
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}

	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("http timeout must be positive, got %d", c.HTTPTimeoutSeconds)
	}

	return nil
}

// UsesOAuth returns true when requests authenticate with an OAuth
// bearer token instead of the PRIVATE-TOKEN header.
func (c *Config) UsesOAuth() bool {
	return c.AuthMethod == AuthOAuth
}

// HTTPTimeout returns the request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
