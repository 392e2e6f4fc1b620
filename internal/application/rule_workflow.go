package application

import (
	"context"
	"sync"

	"github.com/abdidvp/rulecheck/internal/domain"
	"github.com/abdidvp/rulecheck/internal/logger"
)

// RuleListener is notified once per terminal transition of a RuleWorkflow.
type RuleListener interface {
	RulesExtracted(file domain.UploadSelection, rules []domain.Rule)
	RulesFailed(file domain.UploadSelection, err *domain.RemoteError)
}

// RuleWorkflow owns the document screen: the selected document and the
// displayed rule list. At most one extraction is in flight at a time.
type RuleWorkflow struct {
	extractor domain.RuleExtractor
	inspector domain.FileInspector
	listener  RuleListener
	log       logger.Logger

	mu        sync.Mutex
	phase     domain.Phase
	selection domain.UploadSelection
	rules     []domain.Rule
	submitted domain.UploadSelection
	outcome   domain.Outcome
	failure   *domain.RemoteError
}

// NewRuleWorkflow creates a RuleWorkflow displaying initial until the first
// successful extraction. listener may be nil.
func NewRuleWorkflow(
	extractor domain.RuleExtractor,
	inspector domain.FileInspector,
	initial []domain.Rule,
	listener RuleListener,
	log logger.Logger,
) *RuleWorkflow {
	if listener == nil {
		listener = nopListener{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RuleWorkflow{
		extractor: extractor,
		inspector: inspector,
		listener:  listener,
		log:       log,
		phase:     domain.PhaseIdle,
		rules:     cloneRules(initial),
	}
}

// Choose inspects path and selects it if it is an acceptable document.
// A rejected file leaves the current selection in place.
func (w *RuleWorkflow) Choose(path string) error {
	sel, err := w.inspector.Inspect(path, domain.UploadDocument)
	if err != nil {
		return err
	}
	w.Select(sel)
	return nil
}

// Select replaces the current document selection.
func (w *RuleWorkflow) Select(sel domain.UploadSelection) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection = sel
}

// Submit sends the selected document for extraction and blocks until the
// call resolves. It returns ErrNoFileSelected or ErrSubmissionInFlight
// without calling the service; remote failures are recorded on the
// workflow and never returned.
func (w *RuleWorkflow) Submit(ctx context.Context) error {
	return w.submit(ctx, nil)
}

// SubmitFile chooses path and submits it in one step. While an extraction
// is in flight it returns ErrSubmissionInFlight and the selection is kept.
func (w *RuleWorkflow) SubmitFile(ctx context.Context, path string) error {
	if w.Status().Phase == domain.PhaseSubmitting {
		return domain.ErrSubmissionInFlight
	}
	sel, err := w.inspector.Inspect(path, domain.UploadDocument)
	if err != nil {
		return err
	}
	return w.submit(ctx, &sel)
}

func (w *RuleWorkflow) submit(ctx context.Context, sel *domain.UploadSelection) error {
	w.mu.Lock()
	if w.phase == domain.PhaseSubmitting {
		w.mu.Unlock()
		return domain.ErrSubmissionInFlight
	}
	if sel != nil {
		w.selection = *sel
	}
	if w.selection.IsZero() {
		w.mu.Unlock()
		w.log.Warn("rule extraction requested without a document")
		return domain.ErrNoFileSelected
	}
	file := w.selection
	w.phase = domain.PhaseSubmitting
	w.mu.Unlock()

	w.log.Info("extracting rules", "file", file.Name)
	ss, err := w.extractor.ExtractRules(ctx, file)

	w.mu.Lock()
	w.phase = domain.PhaseIdle
	w.submitted = file
	if err != nil {
		rerr := domain.AsRemoteError("extract rules", err)
		w.outcome = domain.OutcomeFailed
		w.failure = rerr
		w.mu.Unlock()

		w.log.Error("rule extraction failed", "file", file.Name, "kind", rerr.Kind, "status", rerr.StatusCode, "err", rerr)
		w.listener.RulesFailed(file, rerr)
		return nil
	}

	rules := domain.RulesFromStrings(ss)
	w.rules = rules
	w.outcome = domain.OutcomeSucceeded
	w.failure = nil
	w.mu.Unlock()

	w.log.Info("rules extracted", "file", file.Name, "count", len(rules))
	w.listener.RulesExtracted(file, cloneRules(rules))
	return nil
}

// Rules returns a copy of the displayed rule list.
func (w *RuleWorkflow) Rules() []domain.Rule {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneRules(w.rules)
}

// Status returns the workflow's current state.
func (w *RuleWorkflow) Status() domain.WorkflowStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return buildStatus(w.phase, w.selection, w.submitted, w.outcome, w.failure)
}

func cloneRules(rules []domain.Rule) []domain.Rule {
	out := make([]domain.Rule, len(rules))
	copy(out, rules)
	return out
}

func buildStatus(phase domain.Phase, sel, submitted domain.UploadSelection, outcome domain.Outcome, failure *domain.RemoteError) domain.WorkflowStatus {
	st := domain.WorkflowStatus{
		Phase:     phase,
		Selection: sel,
		Submitted: submitted,
		Outcome:   outcome,
		Failure:   failure,
	}
	if failure != nil {
		st.Error = failure.Error()
		st.ErrorKind = failure.Kind
	}
	return st
}

type nopListener struct{}

func (nopListener) RulesExtracted(domain.UploadSelection, []domain.Rule) {}
func (nopListener) RulesFailed(domain.UploadSelection, *domain.RemoteError) {}
func (nopListener) DatasetValidated(domain.UploadSelection, domain.ValidationSummary) {}
func (nopListener) DatasetFailed(domain.UploadSelection, *domain.RemoteError) {}
