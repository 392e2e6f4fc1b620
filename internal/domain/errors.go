package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFileSelected is returned when a submission is attempted without
	// a selected file. No remote call is made.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrSubmissionInFlight is returned when a workflow is asked to submit
	// while a remote call is outstanding.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// ErrUnsupportedFile is returned when a selected file does not match the
	// type a workflow accepts.
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// RemoteErrorKind classifies failures at the remote-call boundary.
type RemoteErrorKind string

const (
	// RemoteTransport covers network failures and unreachable services.
	RemoteTransport RemoteErrorKind = "transport"
	// RemoteStatus covers non-2xx responses.
	RemoteStatus RemoteErrorKind = "status"
	// RemoteMalformed covers bodies that cannot be parsed into the
	// expected top-level shape.
	RemoteMalformed RemoteErrorKind = "malformed"
)

// RemoteError is the only error type transport adapters return for a
// failed call.
type RemoteError struct {
	Kind       RemoteErrorKind
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	switch e.Kind {
	case RemoteStatus:
		return fmt.Sprintf("%s: remote returned status %d", e.Op, e.StatusCode)
	default:
		if e.Err == nil {
			return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
		}
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

// AsRemoteError classifies any error from a remote call. Errors that are not
// already a *RemoteError are treated as transport failures.
func AsRemoteError(op string, err error) *RemoteError {
	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}
	return &RemoteError{Kind: RemoteTransport, Op: op, Err: err}
}
