// Package storage exposes the blob-store port used for message attachments,
// plus a local-disk adapter.
package storage

import (
	"context"
	"fmt"
	"io"
)

// ErrorCode is the stable classification a BlobStore attaches to failures.
// The upload service maps these onto user-facing categories instead of
// pattern-matching raw error text.
type ErrorCode string

const (
	CodeDuplicate        ErrorCode = "duplicate"
	CodePermissionDenied ErrorCode = "permission_denied"
	CodeNetwork          ErrorCode = "network"
	CodeUnknown          ErrorCode = "unknown"
)

// Error is a BlobStore failure carrying its classification.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("storage: %s: %v", e.Code, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// StoredObject is the result of a successful save.
type StoredObject struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// BlobStore persists attachment blobs under a caller-chosen path and returns
// their public URL. Failures are *Error values with a stable code where the
// backend allows it.
type BlobStore interface {
	Save(ctx context.Context, path string, r io.Reader) (*StoredObject, error)
}
