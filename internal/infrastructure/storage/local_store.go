package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/sabrinaansede/apphib/internal/domain/service"
)

// UploadsRoute is where the API serves the local upload directory.
const UploadsRoute = "/uploads"

// LocalStore writes photos under dir on fs and serves them from baseURL + UploadsRoute.
type LocalStore struct {
	fs      afero.Fs
	dir     string
	baseURL string
}

func NewLocalStore(fs afero.Fs, dir, baseURL string) (*LocalStore, error) {
	if err := fs.MkdirAll(filepath.Join(dir, photoFolder), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{
		fs:      fs,
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

var _ service.PhotoStore = (*LocalStore)(nil)

func (s *LocalStore) Save(_ context.Context, file io.Reader, contentType string) (string, error) {
	p, err := readPhoto(file, contentType)
	if err != nil {
		return "", err
	}

	if err := afero.WriteReader(s.fs, filepath.Join(s.dir, filepath.FromSlash(p.name)), p.reader()); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	return s.baseURL + path.Join(UploadsRoute, p.name), nil
}

func (s *LocalStore) Delete(_ context.Context, fileURL string) error {
	prefix := s.baseURL + UploadsRoute + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("photo url %q is not served by this store", fileURL)
	}

	name := path.Clean(strings.TrimPrefix(fileURL, prefix))
	if strings.HasPrefix(name, "..") {
		return fmt.Errorf("photo url %q escapes the upload dir", fileURL)
	}
	return s.fs.Remove(filepath.Join(s.dir, filepath.FromSlash(name)))
}

func (s *LocalStore) Close() error {
	return nil
}
