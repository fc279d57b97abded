package store

import "context"

// MemKV is an in-memory KV used by tests and as a last-resort fallback when
// the database file cannot be opened. Values survive only for the process
// lifetime.
type MemKV struct {
	values map[string][]byte
}

// NewMemKV creates an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (m *MemKV) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key.
func (m *MemKV) Set(_ context.Context, key string, value []byte) error {
	m.values[key] = value
	return nil
}

// Delete removes the key.
func (m *MemKV) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

// Close is a no-op.
func (m *MemKV) Close() error { return nil }
