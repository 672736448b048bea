package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned by GetJSON when a stored value does not decode
var ErrMalformed = errors.New("malformed stored value")

// GetJSON reads key and decodes it into a T
func GetJSON[T any](ctx context.Context, s Storage, key string) (T, error) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return out, nil
}

// SetJSON encodes v and writes it to key
func SetJSON(ctx context.Context, s Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
