package domain

// Workflow names used in run history.
const (
	WorkflowRules      = "rules"
	WorkflowValidation = "validation"
)

// RunEntry records one terminal submission.
type RunEntry struct {
	ID         string             `json:"id"`
	Timestamp  string             `json:"timestamp"`
	Workflow   string             `json:"workflow"`
	File       string             `json:"file"`
	Outcome    Outcome            `json:"outcome"`
	ErrorKind  RemoteErrorKind    `json:"error_kind,omitempty"`
	RuleCount  int                `json:"rule_count,omitempty"`
	Summary    *ValidationSummary `json:"summary,omitempty"`
	CommitHash string             `json:"commit_hash,omitempty"`
}
