package usecase

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a single-document query returned no usable
// record. Callers map it to a 404; it is distinct from an upstream failure.
type NotFoundError struct {
	Kind string // document kind, e.g. "project"
	Key  string // slug when applicable
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// UpstreamError wraps a failed content-store call. It is never retried here;
// callers should log it rather than render it as a plain 404.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }
