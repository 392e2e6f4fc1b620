package application

import (
	"context"
	"sync"

	"github.com/abdidvp/rulecheck/internal/domain"
	"github.com/abdidvp/rulecheck/internal/logger"
)

// ValidationListener is notified once per terminal transition of a
// ValidationWorkflow.
type ValidationListener interface {
	DatasetValidated(file domain.UploadSelection, summary domain.ValidationSummary)
	DatasetFailed(file domain.UploadSelection, err *domain.RemoteError)
}

// ValidationWorkflow owns the validation screen: the selected dataset and the
// canonical row collection. Raw rows never leave this type.
type ValidationWorkflow struct {
	validator domain.DatasetValidator
	inspector domain.FileInspector
	listener  ValidationListener
	log       logger.Logger

	mu        sync.Mutex
	phase     domain.Phase
	selection domain.UploadSelection
	rows      []domain.ValidationRow
	filename  string
	rowCount  *int
	submitted domain.UploadSelection
	outcome   domain.Outcome
	failure   *domain.RemoteError
}

// NewValidationWorkflow creates an empty ValidationWorkflow. listener may be nil.
func NewValidationWorkflow(
	validator domain.DatasetValidator,
	inspector domain.FileInspector,
	listener ValidationListener,
	log logger.Logger,
) *ValidationWorkflow {
	if listener == nil {
		listener = nopListener{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ValidationWorkflow{
		validator: validator,
		inspector: inspector,
		listener:  listener,
		log:       log,
		phase:     domain.PhaseIdle,
		rows:      []domain.ValidationRow{},
	}
}

// Choose inspects path and selects it if it is an acceptable dataset.
// A rejected file leaves the current selection in place.
func (w *ValidationWorkflow) Choose(path string) error {
	sel, err := w.inspector.Inspect(path, domain.UploadDataset)
	if err != nil {
		return err
	}
	w.Select(sel)
	return nil
}

// Select replaces the current dataset selection.
func (w *ValidationWorkflow) Select(sel domain.UploadSelection) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection = sel
}

// Submit sends the selected dataset for validation and blocks until the call
// resolves. On success the row collection is replaced by the normalized
// results; on failure it is cleared. Remote failures are recorded on the
// workflow and never returned.
func (w *ValidationWorkflow) Submit(ctx context.Context) error {
	return w.submit(ctx, nil)
}

// SubmitFile chooses path and submits it in one step. While a validation is
// in flight it returns ErrSubmissionInFlight and the selection is kept.
func (w *ValidationWorkflow) SubmitFile(ctx context.Context, path string) error {
	if w.Status().Phase == domain.PhaseSubmitting {
		return domain.ErrSubmissionInFlight
	}
	sel, err := w.inspector.Inspect(path, domain.UploadDataset)
	if err != nil {
		return err
	}
	return w.submit(ctx, &sel)
}

func (w *ValidationWorkflow) submit(ctx context.Context, sel *domain.UploadSelection) error {
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
		w.log.Warn("validation requested without a dataset")
		return domain.ErrNoFileSelected
	}
	file := w.selection
	w.phase = domain.PhaseSubmitting
	w.mu.Unlock()

	w.log.Info("validating dataset", "file", file.Name)
	resp, err := w.validator.ValidateDataset(ctx, file)

	w.mu.Lock()
	w.phase = domain.PhaseIdle
	w.submitted = file
	if err != nil {
		rerr := domain.AsRemoteError("validate dataset", err)
		w.rows = []domain.ValidationRow{}
		w.filename = ""
		w.rowCount = nil
		w.outcome = domain.OutcomeFailed
		w.failure = rerr
		w.mu.Unlock()

		w.log.Error("validation failed", "file", file.Name, "kind", rerr.Kind, "status", rerr.StatusCode, "err", rerr)
		w.listener.DatasetFailed(file, rerr)
		return nil
	}

	var raws []domain.RawRow
	if resp != nil {
		raws = resp.Results
		w.filename = resp.Filename
		w.rowCount = resp.RowCount
	} else {
		w.filename = ""
		w.rowCount = nil
	}
	w.rows = domain.NormalizeAll(raws)
	w.outcome = domain.OutcomeSucceeded
	w.failure = nil
	summary := domain.Summarize(w.rows)
	w.mu.Unlock()

	w.log.Info("dataset validated", "file", file.Name,
		"valid", summary.Valid, "invalid", summary.Invalid, "unknown", summary.Unknown, "total", summary.Total)
	if !summary.AllAccountedFor() {
		w.log.Warn("rows with unrecognized status", "count", summary.Unknown)
	}
	w.listener.DatasetValidated(file, summary)
	return nil
}

// Rows returns a copy of the canonical collection.
func (w *ValidationWorkflow) Rows() []domain.ValidationRow {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneRows(w.rows)
}

// InvalidRows returns the rows shown as detail cards.
func (w *ValidationWorkflow) InvalidRows() []domain.ValidationRow {
	return domain.InvalidRows(w.Rows())
}

// Summary recomputes counts over the current collection.
func (w *ValidationWorkflow) Summary() domain.ValidationSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return domain.Summarize(w.rows)
}

// Report returns everything the validation screen renders.
func (w *ValidationWorkflow) Report() *domain.ValidationReport {
	w.mu.Lock()
	defer w.mu.Unlock()
	rows := cloneRows(w.rows)
	return &domain.ValidationReport{
		File:     w.submitted.Name,
		Filename: w.filename,
		RowCount: w.rowCount,
		Rows:     rows,
		Summary:  domain.Summarize(rows),
	}
}

// Status returns the workflow's current state.
func (w *ValidationWorkflow) Status() domain.WorkflowStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return buildStatus(w.phase, w.selection, w.submitted, w.outcome, w.failure)
}

func cloneRows(rows []domain.ValidationRow) []domain.ValidationRow {
	out := make([]domain.ValidationRow, len(rows))
	for i, r := range rows {
		r.Errors = append([]string{}, r.Errors...)
		out[i] = r
	}
	return out
}
