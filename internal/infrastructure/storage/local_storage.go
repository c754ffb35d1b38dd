package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var _ FileStorage = (*LocalStorage)(nil)

// LocalStorage writes uploads to a directory on disk. Files are served by
// the HTTP server as static content under baseURL.
type LocalStorage struct {
	dir     string
	baseURL string
	maxSize int64
	logger  *zap.Logger
}

// NewLocalStorage creates the upload directory if needed
func NewLocalStorage(dir, baseURL string, maxSize int64, logger *zap.Logger) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
		logger:  logger,
	}, nil
}

// Save validates the upload and writes it under a random name
func (s *LocalStorage) Save(ctx context.Context, data []byte, contentType string) (string, string, error) {
	detected, err := ValidateImage(data, s.maxSize)
	if err != nil {
		return "", "", err
	}
	key, err := newKey(detected)
	if err != nil {
		return "", "", err
	}

	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write upload: %w", err)
	}

	s.logger.Debug("stored upload",
		zap.String("key", key),
		zap.String("content_type", detected),
		zap.Int("size", len(data)))
	return key, s.baseURL + "/" + key, nil
}

// Delete removes the file; a missing file is not an error
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	// Reject anything that could escape the upload directory
	if key == "" || key != filepath.Base(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}
