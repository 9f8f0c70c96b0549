// Package storage keeps small pieces of client state on disk, one JSON file per key.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"
)

var validKey = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var ErrInvalidKey = errors.New("storage: invalid key")

type Local struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
}

func NewLocal(fs afero.Fs, dir string) *Local {
	return &Local{fs: fs, dir: dir}
}

// NewOsLocal stores state under dir on the real filesystem.
func NewOsLocal(dir string) *Local {
	return NewLocal(afero.NewOsFs(), dir)
}

func (l *Local) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", ErrInvalidKey
	}
	return filepath.Join(l.dir, key+".json"), nil
}

// Get decodes the value stored under key into dst. It reports false when the
// key is missing or its contents can't be decoded.
func (l *Local) Get(key string, dst interface{}) bool {
	p, err := l.path(key)
	if err != nil {
		return false
	}

	l.mu.Lock()
	raw, err := afero.ReadFile(l.fs, p)
	l.mu.Unlock()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (l *Local) Set(key string, value interface{}) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.fs.MkdirAll(l.dir, 0o700); err != nil {
		return err
	}
	// Readers only ever see a complete file.
	tmp := p + ".tmp"
	if err := afero.WriteFile(l.fs, tmp, raw, 0o600); err != nil {
		return err
	}
	return l.fs.Rename(tmp, p)
}

// Delete removes the given keys; missing keys are ignored.
func (l *Local) Delete(keys ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		p, err := l.path(key)
		if err != nil {
			return err
		}
		if err := l.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
