package domain

// UploadKind names what a workflow accepts.
type UploadKind string

const (
	UploadDocument UploadKind = "document"
	UploadDataset  UploadKind = "dataset"
)

// AcceptedMIME is the single content type each kind of upload accepts.
var AcceptedMIME = map[UploadKind]string{
	UploadDocument: "application/pdf",
	UploadDataset:  "text/csv",
}

// UploadSelection is a file chosen for submission.
type UploadSelection struct {
	Path     string     `json:"path"`
	Name     string     `json:"name"`
	Kind     UploadKind `json:"kind"`
	MIMEType string     `json:"mime_type"`
	Size     int64      `json:"size"`
	Pages    int        `json:"pages,omitempty"`
}

// IsZero reports whether no file is selected.
func (u UploadSelection) IsZero() bool { return u.Path == "" }
