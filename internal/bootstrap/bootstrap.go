// Package bootstrap wires config, logging and outbound adapters into the two
// workflows. Both inbound surfaces build their sessions here.
package bootstrap

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/abdidvp/rulecheck/internal/adapters/outbound/cache"
	"github.com/abdidvp/rulecheck/internal/adapters/outbound/config"
	"github.com/abdidvp/rulecheck/internal/adapters/outbound/filetype"
	"github.com/abdidvp/rulecheck/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/rulecheck/internal/adapters/outbound/history"
	"github.com/abdidvp/rulecheck/internal/adapters/outbound/remote"
	"github.com/abdidvp/rulecheck/internal/adapters/outbound/report"
	"github.com/abdidvp/rulecheck/internal/application"
	"github.com/abdidvp/rulecheck/internal/domain"
	"github.com/abdidvp/rulecheck/internal/logger"
)

// Options controls how a Session is built.
type Options struct {
	// Dir holds .rulecheck.yaml and the .rulecheck/ state directory.
	Dir string
	// LogLevel overrides the configured level when set.
	LogLevel string
	// LogOutput defaults to stderr.
	LogOutput io.Writer
	// Env replaces the process environment for overrides when non-nil.
	Env map[string]string
}

// Session is a fully wired pair of workflows sharing one config.
type Session struct {
	Dir        string
	Config     domain.ClientConfig
	Log        logger.Logger
	Rules      *application.RuleWorkflow
	Validation *application.ValidationWorkflow
	RuleStore  *cache.Store
	History    *history.FileHistory
	Exporter   *report.XLSXExporter
}

// New loads configuration from opts.Dir and builds a Session.
func New(opts Options) (*Session, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	loader := config.New()
	if opts.Env != nil {
		loader = config.NewWithEnv(opts.Env)
	}
	cfg, err := loader.Load(absDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		if !slices.Contains(domain.ValidLogLevels, opts.LogLevel) {
			return nil, fmt.Errorf("invalid log level %q (valid: %v)", opts.LogLevel, domain.ValidLogLevels)
		}
		level = opts.LogLevel
	}
	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.LogLevel(level)
	logCfg.JSON = cfg.JSONLogs()
	if opts.LogOutput != nil {
		logCfg.Output = opts.LogOutput
	}
	log := logger.New(logCfg)

	store := cache.New()
	hist := history.NewWithLimit(cfg.MaxHistory())

	var (
		runHistory domain.RunHistory
		ruleStore  domain.RuleStore
	)
	if cfg.HistoryEnabled() {
		runHistory = hist
	}
	if cfg.RulePersistence() {
		ruleStore = store
	}

	recorder := application.NewRecorder(absDir, runHistory, ruleStore, gitinfo.New(), log)
	client := remote.New(cfg)
	inspector := filetype.New()

	log.Debug("session ready", "dir", absDir, "endpoint", cfg.Endpoint)

	return &Session{
		Dir:        absDir,
		Config:     cfg,
		Log:        log,
		Rules:      application.NewRuleWorkflow(client, inspector, initialRules(absDir, cfg, store, log), recorder, log),
		Validation: application.NewValidationWorkflow(client, inspector, recorder, log),
		RuleStore:  store,
		History:    hist,
		Exporter:   report.NewXLSXExporter(),
	}, nil
}

// initialRules returns the last saved rule set when persistence is on and one
// exists, otherwise the configured fallback.
func initialRules(dir string, cfg domain.ClientConfig, store *cache.Store, log logger.Logger) []domain.Rule {
	if !cfg.RulePersistence() {
		return cfg.InitialRules()
	}
	set, err := store.Load(dir)
	if err != nil {
		log.Warn("ignoring saved rules", "err", err)
		return cfg.InitialRules()
	}
	if set == nil {
		return cfg.InitialRules()
	}
	return set.Rules
}
