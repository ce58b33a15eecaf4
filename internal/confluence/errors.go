package confluence

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult indicates a well-formed list response with zero entries.
	// A normal outcome, not a failure.
	ErrEmptyResult = errors.New("empty result set")

	// ErrNotFound indicates the queried entity does not exist on the server.
	ErrNotFound = errors.New("content not found")

	// ErrUnsupported indicates the selected service variant cannot serve the
	// operation.
	ErrUnsupported = errors.New("operation not supported by this service variant")
)

// MalformedRecordError reports a non-empty response whose shape violates an
// assumed invariant: the entity exists but cannot be safely normalized.
// Distinct from ErrNotFound.
type MalformedRecordError struct {
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: field %q: %s", e.Field, e.Reason)
}

// PaginationError reports a failed page fetch inside a multi-page walk. The
// whole walk fails; no partial results are returned.
type PaginationError struct {
	Offset int
	Err    error
}

func (e *PaginationError) Error() string {
	return fmt.Sprintf("page fetch at offset %d failed: %v", e.Offset, e.Err)
}

func (e *PaginationError) Unwrap() error {
	return e.Err
}
