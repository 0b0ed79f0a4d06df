package audit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const maxLineBytes = 1 << 20

// FileStore keeps the trail as a plain text file, one line per entry.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Append writes one line and syncs it before returning.
func (f *FileStore) Append(_ context.Context, e Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create dir %s: %w", ErrStorageFailure, dir, err)
		}
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrStorageFailure, f.path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(Format(e)); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorageFailure, f.path, err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrStorageFailure, f.path, err)
	}
	return nil
}

// Entries reads and parses every line. A missing file is an empty trail.
func (f *FileStore) Entries(_ context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageFailure, f.path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorageFailure, f.path, err)
	}
	return Decode(lines), nil
}

// Clear truncates the file to zero length.
func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: truncate %s: %w", ErrStorageFailure, f.path, err)
	}
	return file.Close()
}

// Close is a no-op; the file is opened per operation.
func (f *FileStore) Close() error {
	return nil
}
