// Package cache wraps a key-value store with per-entry expiration. The todo
// service keeps a single serialized snapshot of the unfiltered list in it.
package cache

import (
	"context"
	"time"
)

// ListKey is the well-known key holding the unfiltered list snapshot.
const ListKey = "todos"

// Cache is a string key-value store with expiration. Callers treat it as
// best effort: a read error counts as a miss and a write error is logged
// and ignored.
type Cache interface {
	// GetString returns the value for key and whether it was present.
	GetString(ctx context.Context, key string) (string, bool, error)
	// SetString stores value under key for at most ttl.
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	// Remove drops key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
