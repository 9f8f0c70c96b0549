package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/sabrinaansede/apphib/internal/domain/service"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

const photoFolder = "resenas"

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type photo struct {
	name        string
	contentType string
	body        []byte
}

// readPhoto buffers the upload and sniffs its type. The declared content type
// is only logged; the stored type is always the detected one.
func readPhoto(r io.Reader, declared string) (*photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, service.MaxPhotoSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) > service.MaxPhotoSize {
		return nil, service.ErrPhotoTooLarge
	}

	mt := mimetype.Detect(data)
	ext, ok := photoExtensions[mt.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrUnsupportedPhoto, mt.String())
	}
	if declared != "" && declared != mt.String() {
		logger.Debug("Photo declared as %s but detected %s", declared, mt.String())
	}

	return &photo{
		name:        photoFolder + "/" + uuid.New().String() + ext,
		contentType: mt.String(),
		body:        data,
	}, nil
}

func (p *photo) reader() io.Reader {
	return bytes.NewReader(p.body)
}
