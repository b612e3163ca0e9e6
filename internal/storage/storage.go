// Package storage keeps generated audio artifacts on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidName is returned for names that are not plain file names inside
// the store directory.
var ErrInvalidName = errors.New("invalid artifact name")

const (
	filePrefix = "professional_audio"
	extension  = ".mp3"
)

var styleSlugger = strings.NewReplacer(" & ", "_", " ", "_", "/", "_", `\`, "_")

// FileName builds the artifact name from voice, style and the unix timestamp
// of at, e.g. professional_audio_nova_News_Anchor_Style_1700000000.mp3.
func FileName(voice, style string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%d%s", filePrefix, voice, styleSlugger.Replace(style), at.Unix(), extension)
}

// FileStore saves audio bytes to a local directory.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "TTS_Output"
	}
	return &FileStore{Dir: dir}
}

// Save creates the directory if needed, writes data to {dir}/{name} and
// returns the absolute path of the file.
func (fs *FileStore) Save(name string, data []byte) (string, error) {
	path, err := fs.Path(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output folder %s: %w", fs.Dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Path resolves name to an absolute path inside the store.
func (fs *FileStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	dir, err := filepath.Abs(fs.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output folder: %w", err)
	}
	return filepath.Join(dir, name), nil
}

// Open opens a stored artifact for reading.
func (fs *FileStore) Open(name string) (*os.File, error) {
	path, err := fs.Path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}
