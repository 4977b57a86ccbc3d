package blob

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory BlobStore used by tests and local development.
type Memory struct {
	mu      sync.Mutex
	objects map[string]memObject

	// FailStore makes Store return this error, for exercising upload
	// failure paths.
	FailStore error
	// FailEnumerate makes Enumerate return this error.
	FailEnumerate error

	// Now overrides the clock for created-at stamps.
	Now func() time.Time
}

type memObject struct {
	data      []byte
	createdAt time.Time
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memObject)}
}

func (m *Memory) Store(ctx context.Context, path, contentType string, body io.Reader) (Object, error) {
	if m.FailStore != nil {
		return Object{}, m.FailStore
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return Object{}, err
	}
	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}
	m.mu.Lock()
	m.objects[path] = memObject{data: data, createdAt: now}
	m.mu.Unlock()
	return Object{ID: path, URL: "memory://" + path, Path: path, CreatedAt: now}, nil
}

func (m *Memory) Enumerate(ctx context.Context, prefix string) ([]Object, error) {
	if m.FailEnumerate != nil {
		return nil, m.FailEnumerate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var objects []Object
	for path, obj := range m.objects {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		objects = append(objects, Object{
			ID:        path,
			URL:       "memory://" + path,
			Path:      path,
			CreatedAt: obj.createdAt,
		})
	}
	return objects, nil
}

// Bytes returns the stored content for path, for test assertions.
func (m *Memory) Bytes(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[path]
	return obj.data, ok
}
