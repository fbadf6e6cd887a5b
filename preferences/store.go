package preferences

import (
	"sync"

	"github.com/basekit-go/basekit/status"
	"github.com/basekit-go/basekit/value"
)

// Store persists preference values by path. Implementations must be safe for
// concurrent use.
type Store interface {
	// GetValue returns the value stored at path. A missing path reports
	// status.CodeNotFound.
	GetValue(path string) (value.Value, error)

	// SetValue stores v at path, replacing any previous value.
	SetValue(path string, v value.Value) error
}

// MemoryStore keeps preferences in a value.Object tree in memory. Paths are
// dotted, so "window.width" nests under "window".
type MemoryStore struct {
	mu     sync.Mutex
	values value.Value
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: value.NewObject(nil)}
}

// GetValue returns a deep copy of the value at path.
func (s *MemoryStore) GetValue(path string) (value.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values.FindPath(path)
	if !ok {
		return value.Value{}, status.Errorf(status.CodeNotFound, "no preference at %q", path)
	}
	return v.Clone(), nil
}

// SetValue stores a deep copy of v at path.
func (s *MemoryStore) SetValue(path string, v value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values.SetPath(path, v.Clone())
	return nil
}
