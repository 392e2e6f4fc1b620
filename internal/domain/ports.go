package domain

import "context"

// RuleExtractor submits a document to the remote rule-extraction service.
// Failures are returned as *RemoteError.
type RuleExtractor interface {
	ExtractRules(ctx context.Context, file UploadSelection) ([]string, error)
}

// ValidationResponse is a successful validation call, before normalization.
// Results is nil when the response carried no row collection.
type ValidationResponse struct {
	Results  []RawRow
	Filename string
	RowCount *int
}

// DatasetValidator submits a dataset to the remote validation service.
// Failures are returned as *RemoteError.
type DatasetValidator interface {
	ValidateDataset(ctx context.Context, file UploadSelection) (*ValidationResponse, error)
}

// FileInspector resolves a path into an upload selection, rejecting files
// the workflow does not accept with ErrUnsupportedFile.
type FileInspector interface {
	Inspect(path string, kind UploadKind) (UploadSelection, error)
}

// RuleStore persists the last successfully extracted rule set.
type RuleStore interface {
	Load(dir string) (*RuleSet, error)
	Save(dir string, set *RuleSet) error
}

// RunHistory records terminal submissions.
type RunHistory interface {
	Save(dir string, entry RunEntry) error
	Load(dir string) ([]RunEntry, error)
}

// ConfigLoader loads client configuration from a directory.
type ConfigLoader interface {
	Load(dir string) (ClientConfig, error)
}

// GitInfo reports version-control information for a path.
type GitInfo interface {
	CommitHash(path string) (string, error)
}

// ReportExporter writes a validation report to a file.
type ReportExporter interface {
	Export(report *ValidationReport, path string) error
}
