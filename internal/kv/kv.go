package kv

import (
	"context"
	"fmt"
)

// Storage is a durable key-value store of JSON snapshots.
type Storage interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written or was deleted.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}

// Backend names a Storage implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBolt   Backend = "bolt"
	BackendMemory Backend = "memory"
)

// ValidBackends lists the accepted backend names.
var ValidBackends = []Backend{BackendSQLite, BackendBolt, BackendMemory}

// Open opens the named backend at path. path is ignored for memory.
func Open(backend Backend, path string) (Storage, error) {
	switch backend {
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendBolt:
		return OpenBolt(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q: must be one of %v", backend, ValidBackends)
	}
}
