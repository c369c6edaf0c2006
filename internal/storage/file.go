package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// DefaultMaxFileSize bounds a single stored value
const DefaultMaxFileSize = 1 << 20

// File stores each key as a JSON document under a base directory.
// Writes go to a temporary file that is renamed into place, so a reader
// never sees a partially written value.
type File struct {
	maxFileSize int // Maximum number of bytes for a single value
	basePath    string
	mutex       sync.RWMutex
}

// maxBytesWriter is a writer that errors when more than N bytes are written
type maxBytesWriter struct {
	w io.Writer // underlying writer
	n int       // max bytes remaining
}

func (l *maxBytesWriter) Write(p []byte) (int, error) {
	if l.n <= 0 {
		return 0, io.EOF
	}
	if len(p) > l.n {
		p = p[:l.n]
	}
	n, err := l.w.Write(p)
	l.n -= n
	if err != nil {
		return n, err
	}
	if l.n <= 0 {
		return n, io.EOF
	}
	return n, nil
}

// NewFile creates a file store rooted at basePath.
// maxSize is the max number of bytes a single value can encode to, 0 means DefaultMaxFileSize.
func NewFile(basePath string, maxSize int) (*File, error) {
	p, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p, os.ModePerm); err != nil {
		return nil, fmt.Errorf("unable to create directory: %w", err)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	return &File{basePath: p, maxFileSize: maxSize}, nil
}

func (f *File) Get(_ context.Context, key string, dst any) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	f.mutex.RLock()
	data, err := os.ReadFile(f.fullPath(key))
	f.mutex.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("unable to read %q: %w", key, err)
	}

	return true, decode(key, data, dst)
}

func (f *File) Set(_ context.Context, key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	if len(data) > f.maxFileSize {
		return fmt.Errorf("value for %q exceeds maximum allowed size of %d bytes", key, f.maxFileSize)
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	fp := f.fullPath(key)

	// Create a temporary file in the same directory
	tempFile, err := os.CreateTemp(f.basePath, "temp-*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()
	// Ensure the temporary file is deleted if the function returns early
	defer os.Remove(tempPath)

	writer := &maxBytesWriter{w: tempFile, n: f.maxFileSize}
	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil && err != io.EOF {
		tempFile.Close()
		return fmt.Errorf("unable to write to file: %w", err)
	}

	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	// Move the temporary file to the final location
	if err := os.Rename(tempPath, fp); err != nil {
		return fmt.Errorf("unable to move temporary file to final location: %w", err)
	}

	return nil
}

func (f *File) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	err := os.Remove(f.fullPath(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to remove %q: %w", key, err)
	}
	return nil
}

// returns the absolute full path, keys are escaped so they can never leave basePath
func (f *File) fullPath(key string) string {
	return filepath.Join(f.basePath, url.PathEscape(key)+".json")
}
