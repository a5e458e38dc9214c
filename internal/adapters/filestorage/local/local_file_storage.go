package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/docflow_app/internal/adapters/filestorage"
	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/ports/storage"
)

type localFileStorage struct {
	root string
}

// NewLocalFileStorage stores files on disk under root.
func NewLocalFileStorage(root string) (storage.FileStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root %q: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %q: %w", abs, err)
	}
	return &localFileStorage{root: abs}, nil
}

var _ storage.FileStorage = (*localFileStorage)(nil)

// resolve maps a stored relative path to disk, refusing paths that escape root.
func (s *localFileStorage) resolve(rel string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", apperrors.NewValidationFailedError("invalid file path")
	}
	return full, nil
}

func (s *localFileStorage) Store(ctx context.Context, r io.Reader, suggestedName, folder string) (string, error) {
	rel := filestorage.ObjectName(suggestedName, folder)
	full, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", apperrors.NewPersistenceError("failed to create upload folder", err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to create file", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", apperrors.NewPersistenceError("failed to write file", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", apperrors.NewPersistenceError("failed to flush file", err)
	}
	return rel, nil
}

func (s *localFileStorage) Delete(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.NewPersistenceError("failed to delete file", err)
	}
	return nil
}

func (s *localFileStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("file")
		}
		return nil, apperrors.NewPersistenceError("failed to open file", err)
	}
	return f, nil
}
