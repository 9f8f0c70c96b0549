package service

import (
	"context"
	"errors"
	"io"
)

// MaxPhotoSize caps a single review photo.
const MaxPhotoSize = 5 << 20

var (
	ErrUnsupportedPhoto = errors.New("unsupported photo type")
	ErrPhotoTooLarge    = errors.New("photo exceeds size limit")
)

// PhotoStore persists review photos and returns the public URL they are served from.
type PhotoStore interface {
	Save(ctx context.Context, file io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
	Close() error
}
