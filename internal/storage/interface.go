package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key holds no value
var ErrNotFound = errors.New("key not found")

// Storage is a string key-value store.
// Values are opaque to the store and must round-trip exactly.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
