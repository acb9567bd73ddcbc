package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scoutline/scoutline-api/internal/apperrors"
	"github.com/scoutline/scoutline-api/internal/models"
	"github.com/scoutline/scoutline-api/internal/storage"
)

// MaxAttachmentSize is the hard cap for one attachment.
const MaxAttachmentSize = 10 << 20 // 10 MB

const maxFilenameLen = 100

// allowedMIMETypes is the fixed allow-list for attachments.
var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"text/plain": true,
}

var (
	dangerousChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// nowUnixNano is a hook so tests get stable storage paths.
var nowUnixNano = func() int64 { return time.Now().UnixNano() }

// UploadService validates and stores message attachments.
type UploadService struct {
	Store storage.BlobStore
	newID func() string
}

func NewUploadService(store storage.BlobStore) *UploadService {
	return &UploadService{Store: store, newID: func() string { return uuid.NewString()[:8] }}
}

// UploadAttachment checks size and MIME type before any storage call, stores
// the blob under the acting user's namespace and returns its public URL.
func (s *UploadService) UploadAttachment(ctx context.Context, actor models.Actor, filename, mimeType string, size int64, r io.Reader) (*storage.StoredObject, error) {
	if size > MaxAttachmentSize {
		return nil, &apperrors.UploadError{
			Category: apperrors.UploadTooLarge,
			Msg:      fmt.Sprintf("file exceeds the %d MB limit", MaxAttachmentSize>>20),
		}
	}
	if !allowedMIMETypes[mimeType] {
		return nil, &apperrors.UploadError{
			Category: apperrors.UploadUnsupportedType,
			Msg:      fmt.Sprintf("file type %q is not allowed", mimeType),
		}
	}

	safe := SanitizeFilename(filename)
	ts := nowUnixNano()
	path := fmt.Sprintf("attachments/%s/%d/%d_%s_%s", actor.Type, actor.ID, ts, s.newID(), safe)

	obj, err := s.Store.Save(ctx, path, io.LimitReader(r, MaxAttachmentSize))
	if err != nil {
		return nil, classifyUpload(err)
	}
	return obj, nil
}

// SanitizeFilename strips filesystem-dangerous and control characters,
// collapses whitespace and caps the length.
func SanitizeFilename(name string) string {
	name = dangerousChars.ReplaceAllString(name, "_")
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	if name == "" {
		name = "file"
	}
	if len(name) > maxFilenameLen {
		name = name[len(name)-maxFilenameLen:]
	}
	return name
}

// classifyUpload maps a storage failure onto the user-facing categories via
// the adapter's stable error codes, with a generic fallback.
func classifyUpload(err error) *apperrors.UploadError {
	var serr *storage.Error
	if errors.As(err, &serr) {
		switch serr.Code {
		case storage.CodeDuplicate:
			return &apperrors.UploadError{Category: apperrors.UploadDuplicate, Msg: "a file with this name was already uploaded"}
		case storage.CodePermissionDenied:
			return &apperrors.UploadError{Category: apperrors.UploadPermissionDenied, Msg: "upload not permitted"}
		case storage.CodeNetwork:
			return &apperrors.UploadError{Category: apperrors.UploadNetwork, Msg: "upload failed, please retry"}
		}
	}
	return &apperrors.UploadError{Category: apperrors.UploadUnknown, Msg: "upload failed"}
}
