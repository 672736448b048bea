package storage

import "context"

// Namespaced scopes every key of an underlying store under a prefix
type Namespaced struct {
	inner  Storage
	prefix string
}

// Ensure Namespaced implements the interface
var _ Storage = (*Namespaced)(nil)

// WithPrefix returns a view of s in which key k is stored as prefix+k
func WithPrefix(s Storage, prefix string) *Namespaced {
	return &Namespaced{inner: s, prefix: prefix}
}

func (n *Namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.prefix+key)
}
