package domain

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// Default client settings, matching the reference service deployment.
const (
	DefaultEndpoint     = "http://localhost:8000"
	DefaultExtractPath  = "/extract_rules"
	DefaultValidatePath = "/validate"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultHistoryLimit = 500
)

// ValidLogLevels enumerates accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats enumerates accepted log_format values.
var ValidLogFormats = []string{"text", "json"}

// ClientConfig holds settings loaded from .rulecheck.yaml.
// Pointer fields distinguish "not specified" from false.
type ClientConfig struct {
	Endpoint     string   `yaml:"endpoint"       json:"endpoint"`
	ExtractPath  string   `yaml:"extract_path"   json:"extract_path"`
	ValidatePath string   `yaml:"validate_path"  json:"validate_path"`
	Timeout      string   `yaml:"timeout"        json:"timeout,omitempty"`
	LogLevel     string   `yaml:"log_level"      json:"log_level"`
	LogFormat    string   `yaml:"log_format"     json:"log_format"`
	HistoryLimit int      `yaml:"history_limit,omitempty" json:"history_limit,omitempty"`
	DefaultRules []string `yaml:"default_rules"  json:"default_rules,omitempty"`
	History      *bool    `yaml:"history,omitempty"       json:"history,omitempty"`
	PersistRules *bool    `yaml:"persist_rules,omitempty" json:"persist_rules,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Endpoint:     DefaultEndpoint,
		ExtractPath:  DefaultExtractPath,
		ValidatePath: DefaultValidatePath,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
	}
}

// WithDefaults fills unset fields from DefaultConfig.
func (c ClientConfig) WithDefaults() ClientConfig {
	d := DefaultConfig()
	if c.Endpoint == "" {
		c.Endpoint = d.Endpoint
	}
	if c.ExtractPath == "" {
		c.ExtractPath = d.ExtractPath
	}
	if c.ValidatePath == "" {
		c.ValidatePath = d.ValidatePath
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	return c
}

// HistoryEnabled reports whether runs are recorded. Defaults to true.
func (c ClientConfig) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// RulePersistence reports whether extracted rules are saved. Defaults to true.
func (c ClientConfig) RulePersistence() bool {
	return c.PersistRules == nil || *c.PersistRules
}

// JSONLogs reports whether log lines are written as JSON objects.
func (c ClientConfig) JSONLogs() bool {
	return c.LogFormat == "json"
}

// MaxHistory returns how many run entries are retained.
func (c ClientConfig) MaxHistory() int {
	if c.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return c.HistoryLimit
}

// InitialRules returns the configured fallback rules, or the built-in set.
func (c ClientConfig) InitialRules() []Rule {
	if len(c.DefaultRules) > 0 {
		return RulesFromStrings(c.DefaultRules)
	}
	return DefaultRules()
}

// RequestTimeout returns the transport timeout; zero means none.
// Call Validate first; an unparsable value yields zero.
func (c ClientConfig) RequestTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ClientConfig) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoint scheme must be http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("endpoint must have a host, got %q", c.Endpoint)
		}
	}

	for name, p := range map[string]string{"extract_path": c.ExtractPath, "validate_path": c.ValidatePath} {
		if p != "" && !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%s must start with '/', got %q", name, p)
		}
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("timeout must not be negative, got %s", d)
		}
	}

	if c.LogLevel != "" && !slices.Contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("unknown log_level %q (valid: %s)", c.LogLevel, strings.Join(ValidLogLevels, ", "))
	}

	if c.LogFormat != "" && !slices.Contains(ValidLogFormats, c.LogFormat) {
		return fmt.Errorf("unknown log_format %q (valid: %s)", c.LogFormat, strings.Join(ValidLogFormats, ", "))
	}

	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}

	return nil
}
