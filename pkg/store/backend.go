package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by a Backend when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// ErrCorrupt wraps every decode failure of a persisted blob.
var ErrCorrupt = errors.New("store: corrupt planner data")

// Backend persists opaque blobs under string keys.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	// Location is the file holding key, or "" for non-file backends.
	Location(key string) string
	Close() error
}

// OpenBackend opens the backend named by cfg.
func OpenBackend(cfg Config) (Backend, error) {
	switch name := cfg.Backend(); name {
	case BackendDiskv:
		return NewDiskv(cfg.BasePath())
	case BackendSQLite:
		return OpenSQLite(cfg.BasePath())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", name)
	}
}

// Memory is an in-process Backend used when nothing else can be opened and in tests.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
	// Fail makes every Write return this error when set.
	Fail error
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Location(string) string { return "" }

func (m *Memory) Close() error { return nil }
