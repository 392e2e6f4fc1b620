package application

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/abdidvp/rulecheck/internal/domain"
	"github.com/abdidvp/rulecheck/internal/logger"
)

// Recorder persists the side effects of terminal transitions: successful
// rule sets and one history entry per submission. All writes are
// best-effort; a failed write is logged and never affects workflow state.
type Recorder struct {
	dir     string
	history domain.RunHistory
	rules   domain.RuleStore
	git     domain.GitInfo
	log     logger.Logger
	now     func() time.Time
}

// NewRecorder creates a Recorder writing under dir. Any of history, rules
// and git may be nil to disable that concern.
func NewRecorder(dir string, history domain.RunHistory, rules domain.RuleStore, git domain.GitInfo, log logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{dir: dir, history: history, rules: rules, git: git, log: log, now: time.Now}
}

// RulesExtracted saves the rule set and records a successful run.
func (r *Recorder) RulesExtracted(file domain.UploadSelection, rules []domain.Rule) {
	if r.rules != nil {
		set := &domain.RuleSet{
			Source:      file.Name,
			ExtractedAt: r.now().UTC().Format(time.RFC3339),
			Rules:       rules,
		}
		if err := r.rules.Save(r.dir, set); err != nil {
			r.log.Warn("saving rules failed", "err", err)
		}
	}
	entry := r.entry(domain.WorkflowRules, file, domain.OutcomeSucceeded)
	entry.RuleCount = len(rules)
	r.save(entry)
}

// RulesFailed records a failed extraction. Stored rules are left untouched.
func (r *Recorder) RulesFailed(file domain.UploadSelection, err *domain.RemoteError) {
	entry := r.entry(domain.WorkflowRules, file, domain.OutcomeFailed)
	entry.ErrorKind = err.Kind
	r.save(entry)
}

// DatasetValidated records a successful validation with its summary.
func (r *Recorder) DatasetValidated(file domain.UploadSelection, summary domain.ValidationSummary) {
	entry := r.entry(domain.WorkflowValidation, file, domain.OutcomeSucceeded)
	entry.Summary = &summary
	r.save(entry)
}

// DatasetFailed records a failed validation.
func (r *Recorder) DatasetFailed(file domain.UploadSelection, err *domain.RemoteError) {
	entry := r.entry(domain.WorkflowValidation, file, domain.OutcomeFailed)
	entry.ErrorKind = err.Kind
	r.save(entry)
}

func (r *Recorder) entry(workflow string, file domain.UploadSelection, outcome domain.Outcome) domain.RunEntry {
	entry := domain.RunEntry{
		ID:        uuid.NewString(),
		Timestamp: r.now().UTC().Format(time.RFC3339),
		Workflow:  workflow,
		File:      file.Name,
		Outcome:   outcome,
	}
	// Stamp the commit of the repository holding the uploaded file, if any.
	if r.git != nil && file.Path != "" {
		if hash, err := r.git.CommitHash(filepath.Dir(file.Path)); err == nil {
			entry.CommitHash = hash
		}
	}
	return entry
}

func (r *Recorder) save(entry domain.RunEntry) {
	if r.history == nil {
		return
	}
	if err := r.history.Save(r.dir, entry); err != nil {
		r.log.Warn("recording run failed", "err", err)
	}
}
