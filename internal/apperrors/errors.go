// Package apperrors defines the error taxonomy shared by services and
// handlers. Handlers map these onto HTTP statuses; nothing below this layer
// knows about HTTP.
package apperrors

import "fmt"

// ErrUnauthenticated is returned when no valid session accompanies a request.
var ErrUnauthenticated = fmt.Errorf("authentication required")

// ErrRoomAccess merges room-not-found and wrong-participant so callers cannot
// probe for the existence of rooms they are not part of.
var ErrRoomAccess = fmt.Errorf("room not found or access denied")

// ErrNotFound is returned when a resource other than a room is missing.
var ErrNotFound = fmt.Errorf("resource not found")

// ValidationError wraps a user-facing message about bad input.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PersistenceError indicates the external store failed mid-operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps a store error with the operation that hit it.
func Persistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// UploadCategory is the small set of user-facing upload failure kinds.
type UploadCategory string

const (
	UploadTooLarge         UploadCategory = "too_large"
	UploadUnsupportedType  UploadCategory = "unsupported_type"
	UploadDuplicate        UploadCategory = "duplicate"
	UploadPermissionDenied UploadCategory = "permission_denied"
	UploadNetwork          UploadCategory = "network"
	UploadUnknown          UploadCategory = "unknown"
)

// UploadError carries a classified storage failure.
type UploadError struct {
	Category UploadCategory
	Msg      string
}

func (e *UploadError) Error() string { return e.Msg }
