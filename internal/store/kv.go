package store

import (
	"context"
	"errors"
)

// Common errors returned by KV implementations.
var (
	// ErrKeyNotFound is returned when no value exists for the requested key.
	ErrKeyNotFound = errors.New("key not found")
)

// Logical keys used by the managers. Each collection is serialized and
// written as a whole on every mutation; there are no partial writes.
const (
	KeyWords           = "words"
	KeyPassages        = "reading_passages"
	KeyReadingSessions = "reading_sessions"
)

// KV is the flat key-value byte store everything persists through.
// Version: 1.0
type KV interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying storage resource.
	Close() error
}
