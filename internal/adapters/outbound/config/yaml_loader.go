package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abdidvp/rulecheck/internal/domain"
)

const (
	// FileName is the per-directory config file.
	FileName = ".rulecheck.yaml"
	envFile  = ".env"

	EnvEndpoint  = "RULECHECK_ENDPOINT"
	EnvTimeout   = "RULECHECK_TIMEOUT"
	EnvLogLevel  = "RULECHECK_LOG_LEVEL"
	EnvLogFormat = "RULECHECK_LOG_FORMAT"
)

// YAMLLoader implements domain.ConfigLoader by reading .rulecheck.yaml.
// Values from the environment, or from a .env file next to the config,
// override the file. Process environment wins over .env.
type YAMLLoader struct {
	lookupEnv func(string) (string, bool)
}

// New creates a YAMLLoader reading the process environment.
func New() *YAMLLoader { return &YAMLLoader{lookupEnv: os.LookupEnv} }

// NewWithEnv creates a YAMLLoader reading overrides from env instead of the
// process environment.
func NewWithEnv(env map[string]string) *YAMLLoader {
	return &YAMLLoader{lookupEnv: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}
}

// Load reads .rulecheck.yaml from dir.
// Returns DefaultConfig (plus overrides) if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.ClientConfig, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return domain.ClientConfig{}, err
	default:
		var fileCfg domain.ClientConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return domain.ClientConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
		}
		// Validate before defaults fill in, so typos in raw input surface.
		if err := fileCfg.Validate(); err != nil {
			return domain.ClientConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
		}
		cfg = fileCfg.WithDefaults()
	}

	dotenv, err := readDotEnv(dir)
	if err != nil {
		return domain.ClientConfig{}, err
	}
	cfg = l.applyOverrides(cfg, dotenv)

	if err := cfg.Validate(); err != nil {
		return domain.ClientConfig{}, fmt.Errorf("invalid environment override: %w", err)
	}
	return cfg, nil
}

func (l *YAMLLoader) applyOverrides(cfg domain.ClientConfig, dotenv map[string]string) domain.ClientConfig {
	get := func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}
	if v, ok := get(EnvEndpoint); ok {
		cfg.Endpoint = v
	}
	if v, ok := get(EnvTimeout); ok {
		cfg.Timeout = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	return cfg
}

func readDotEnv(dir string) (map[string]string, error) {
	env, err := godotenv.Read(filepath.Join(dir, envFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", envFile, err)
	}
	return env, nil
}
