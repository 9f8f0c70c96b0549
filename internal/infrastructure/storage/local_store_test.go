package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinaansede/apphib/internal/domain/service"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newTestStore(t *testing.T) (*LocalStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := NewLocalStore(fs, "uploads", "http://localhost:5000/")
	require.NoError(t, err)
	return s, fs
}

func TestLocalStoreSaveWritesSniffedPhoto(t *testing.T) {
	s, fs := newTestStore(t)

	url, err := s.Save(context.Background(), bytes.NewReader(pngHeader), "application/octet-stream")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:5000/uploads/resenas/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "http://localhost:5000/uploads/")
	stored, err := afero.ReadFile(fs, "uploads/"+name)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestLocalStoreRejectsNonImages(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Save(context.Background(), strings.NewReader("hola, no soy una foto"), "image/png")
	assert.ErrorIs(t, err, service.ErrUnsupportedPhoto)
}

func TestLocalStoreRejectsOversizedPhotos(t *testing.T) {
	s, _ := newTestStore(t)
	big := append(append([]byte{}, pngHeader...), make([]byte, service.MaxPhotoSize)...)

	_, err := s.Save(context.Background(), bytes.NewReader(big), "image/png")
	assert.ErrorIs(t, err, service.ErrPhotoTooLarge)
}

func TestLocalStoreDelete(t *testing.T) {
	s, fs := newTestStore(t)

	url, err := s.Save(context.Background(), bytes.NewReader(pngHeader), "image/png")
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), url))

	name := strings.TrimPrefix(url, "http://localhost:5000/uploads/")
	exists, _ := afero.Exists(fs, "uploads/"+name)
	assert.False(t, exists)

	assert.Error(t, s.Delete(context.Background(), "https://elsewhere.example/foto.png"))
	assert.Error(t, s.Delete(context.Background(), "http://localhost:5000/uploads/../secret"))
}

func TestCloudStorageObjectName(t *testing.T) {
	c := &CloudStorageClient{bucketName: "fotos"}

	name, err := c.objectName(c.publicURL("resenas/a.png"))
	require.NoError(t, err)
	assert.Equal(t, "resenas/a.png", name)

	_, err = c.objectName("https://storage.googleapis.com/otro/resenas/a.png")
	assert.Error(t, err)
	_, err = c.objectName("http://localhost/uploads/a.png")
	assert.Error(t, err)
}
