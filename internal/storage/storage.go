// Package storage is the key-value persistence substrate behind the cart,
// wishlist and session state. Values are JSON encoded, so any structured
// value that round-trips through encoding/json can be stored.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidKey is returned for empty keys
var ErrInvalidKey = errors.New("storage: invalid key")

// Store is a persistent key-value store
type Store interface {
	// Get decodes the value stored under key into dst.
	// It returns false without touching dst when the key is missing.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value any) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// GetOrDefault returns the value under key, or def when the key is missing
func GetOrDefault[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	var v T
	ok, err := s.Get(ctx, key, &v)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

func encode(key string, value any) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("storage: encoding %q: %w", key, err)
	}
	return b, nil
}

func decode(key string, data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("storage: decoding %q: %w", key, err)
	}
	return nil
}

type prefixed struct {
	store  Store
	prefix string
}

// Prefixed namespaces every key of store with prefix
func Prefixed(store Store, prefix string) Store {
	return &prefixed{store: store, prefix: prefix + ":"}
}

func (p *prefixed) Get(ctx context.Context, key string, dst any) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}
	return p.store.Get(ctx, p.prefix+key, dst)
}

func (p *prefixed) Set(ctx context.Context, key string, value any) error {
	if key == "" {
		return ErrInvalidKey
	}
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return p.store.Remove(ctx, p.prefix+key)
}
