package domain

// Phase is where a workflow is in its submit cycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
)

// Outcome is the terminal transition of the most recent submission.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// WorkflowStatus is a point-in-time view of a workflow. Submitted is the
// file the last outcome belongs to and may differ from Selection.
type WorkflowStatus struct {
	Phase     Phase           `json:"phase"`
	Selection UploadSelection `json:"selection"`
	Submitted UploadSelection `json:"submitted"`
	Outcome   Outcome         `json:"outcome,omitempty"`
	Failure   *RemoteError    `json:"-"`
	Error     string          `json:"error,omitempty"`
	ErrorKind RemoteErrorKind `json:"error_kind,omitempty"`
}

// HasFile reports whether a file is selected.
func (s WorkflowStatus) HasFile() bool { return !s.Selection.IsZero() }
