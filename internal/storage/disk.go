package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore writes blobs below a root directory and serves them from a
// public base URL.
type DiskStore struct {
	root    string
	baseURL string
}

func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

var _ BlobStore = (*DiskStore)(nil)

func (d *DiskStore) Save(_ context.Context, path string, r io.Reader) (*StoredObject, error) {
	full := filepath.Join(d.root, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, classifyOSError(err)
	}

	// O_EXCL: the upload service prefixes names with a timestamp, so an
	// existing file means a genuine duplicate submission.
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, classifyOSError(err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return nil, classifyOSError(err)
	}

	return &StoredObject{
		URL:  d.baseURL + "/" + path,
		Path: path,
	}, nil
}

func classifyOSError(err error) *Error {
	switch {
	case errors.Is(err, fs.ErrExist):
		return &Error{Code: CodeDuplicate, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &Error{Code: CodePermissionDenied, Err: err}
	default:
		return &Error{Code: CodeUnknown, Err: err}
	}
}
