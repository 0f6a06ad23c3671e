// Package storage provides the writable sink for rendered report
// artifacts. It defines the Store interface, a filesystem implementation
// writing to a downloads directory, and an in-memory implementation for
// testing.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrMissingName      = errors.New("artifact name is required")
)

// Store is the contract for artifact sinks. Save writes the content under
// the given file name and returns the location the artifact ended up at;
// implementations must never overwrite an existing artifact with the same
// name. Open retrieves a previously saved artifact by location.
type Store interface {
	Save(ctx context.Context, name string, content io.Reader) (string, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// ---------------------------------------------------------------------------
// Filesystem implementation
// ---------------------------------------------------------------------------

// DirStore writes artifacts to a directory on the local filesystem.
type DirStore struct {
	dir string

	mu sync.Mutex
	// now is swappable in tests for deterministic collision suffixes.
	now func() time.Time
}

// NewDirStore returns a DirStore rooted at dir. When dir is empty, the
// user's Downloads directory is used, matching where end users expect
// generated reports to land.
func NewDirStore(dir string) (*DirStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, "Downloads")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &DirStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory artifacts are written to.
func (s *DirStore) Dir() string { return s.dir }

// Save writes content to dir/name. If the name is taken, a UTC timestamp
// suffix (and a counter, should that still collide) is appended before the
// extension so concurrent reports for identically named patients never
// clobber each other.
func (s *DirStore) Save(_ context.Context, name string, content io.Reader) (string, error) {
	if name == "" {
		return "", ErrMissingName
	}

	s.mu.Lock()
	path := s.resolvePath(name)
	// Create eagerly while holding the lock so a concurrent Save with the
	// same name resolves to a different path.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close artifact: %w", err)
	}
	return path, nil
}

// Open returns the artifact content at location.
func (s *DirStore) Open(_ context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArtifactNotFound
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	return f, nil
}

func (s *DirStore) resolvePath(name string) string {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	stamp := s.now().UTC().Format("20060102T150405")

	candidate := filepath.Join(s.dir, fmt.Sprintf("%s-%s%s", base, stamp, ext))
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(s.dir, fmt.Sprintf("%s-%s-%d%s", base, stamp, i, ext))
	}
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

// MemStore is a thread-safe, in-memory Store for testing.
type MemStore struct {
	mu        sync.RWMutex
	artifacts map[string][]byte
}

// NewMemStore returns a ready-to-use MemStore.
func NewMemStore() *MemStore {
	return &MemStore{artifacts: make(map[string][]byte)}
}

func (s *MemStore) Save(_ context.Context, name string, content io.Reader) (string, error) {
	if name == "" {
		return "", ErrMissingName
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	location := name
	for i := 1; ; i++ {
		if _, taken := s.artifacts[location]; !taken {
			break
		}
		ext := filepath.Ext(name)
		location = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), i, ext)
	}
	s.artifacts[location] = data
	return location, nil
}

func (s *MemStore) Open(_ context.Context, location string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.artifacts[location]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrArtifactNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Get returns a stored artifact's bytes, for test assertions.
func (s *MemStore) Get(location string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.artifacts[location]
	return data, ok
}
