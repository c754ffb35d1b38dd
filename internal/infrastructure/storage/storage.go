// Package storage provides file storage backends for company and review
// images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// FileStorage stores uploaded image files and returns their public URL
type FileStorage interface {
	// Save persists the file under a generated key and returns the key and
	// the public URL it will be served from.
	Save(ctx context.Context, data []byte, contentType string) (key string, url string, err error)
	// Delete removes a previously stored file. Deleting an unknown key is
	// not an error.
	Delete(ctx context.Context, key string) error
}

var (
	// ErrUnsupportedType is returned for anything that is not an allowed image
	ErrUnsupportedType = errors.New("unsupported file type, expected JPEG, PNG, WebP or GIF")

	// ErrFileTooLarge is returned when the upload exceeds the configured limit
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)

// extensions by sniffed content type
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ValidateImage checks size and sniffs the real content type of an upload.
// The declared Content-Type header is ignored, only the bytes count.
func ValidateImage(data []byte, maxSize int64) (contentType string, err error) {
	if len(data) == 0 {
		return "", ErrUnsupportedType
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", ErrFileTooLarge
	}
	detected := http.DetectContentType(data)
	if _, ok := imageExtensions[detected]; !ok {
		return "", ErrUnsupportedType
	}
	return detected, nil
}

// newKey generates a random object key for a validated content type
func newKey(contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	return fmt.Sprintf("%s%s", uuid.New().String(), ext), nil
}
