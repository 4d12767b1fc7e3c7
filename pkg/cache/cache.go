// Package cache stores parsed pages keyed by the checksum of their source
// so unchanged pages are never parsed twice.
package cache

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Store.Get for an unknown key.
var ErrNotFound = errors.New("cache entry not found")

// ErrInvalidKey is returned for keys not produced by Key.
var ErrInvalidKey = errors.New("invalid cache key")

// Store persists encoded pages.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the entry for key, or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous entry.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the entry for key. Deleting a missing entry is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

var keyPattern = regexp.MustCompile(`^[a-z]+-[0-9a-f]{64}$`)

// Key returns the store key of a page of the given syntax whose content
// has checksum. The same bytes parse differently per syntax, so both take
// part in the key.
func Key(syntax, checksum string) string {
	return syntax + "-" + checksum
}

// ValidateKey returns an error wrapping ErrInvalidKey unless key has the
// form produced by Key.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// NopStore caches nothing.
type NopStore struct{}

// Get always reports a miss.
func (NopStore) Get(_ context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Put discards data.
func (NopStore) Put(context.Context, string, []byte) error { return nil }

// Delete does nothing.
func (NopStore) Delete(context.Context, string) error { return nil }

// Clear does nothing.
func (NopStore) Clear(context.Context) error { return nil }

// Close does nothing.
func (NopStore) Close() error { return nil }
