// Package storage keeps gallery files on the local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

// ErrInvalidPath is returned for paths that leave the storage root.
var ErrInvalidPath = errors.New("path outside of storage root")

type localImageStore struct {
	root   string
	logger logger.Logger
}

// NewLocalImageStore stores images below root, one directory per show.
func NewLocalImageStore(root string, logger logger.Logger) (shows.ImageStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &localImageStore{root: abs, logger: logger}, nil
}

// Save writes r to <root>/<showID>/<uuid><ext> and returns the path relative
// to root.
func (s *localImageStore) Save(ctx context.Context, showID, filename string, r io.Reader) (string, error) {
	if _, err := uuid.Parse(showID); err != nil {
		return "", fmt.Errorf("invalid show id: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	rel := filepath.Join(showID, uuid.NewString()+ext)
	full, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", fmt.Errorf("failed to create show directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Stored image %s", rel))
	return filepath.ToSlash(rel), nil
}

func (s *localImageStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	return f, nil
}

// Delete removes the file; a missing file is not an error.
func (s *localImageStore) Delete(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Deleted image %s", path))
	return nil
}

func (s *localImageStore) resolve(rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
