// Package cache keeps recently used result blobs in memory.
package cache

import "context"

// Cache is a byte-oriented cache for immutable blobs keyed by name.
// Returned slices must be treated as read-only.
type Cache interface {
	// Get returns a cached blob. ok=false if missing.
	Get(ctx context.Context, key string) (b []byte, ok bool)
	// Set caches a blob. The caller must not modify b afterwards.
	Set(ctx context.Context, key string, b []byte)
	// Invalidate removes the entry for key, if any.
	Invalidate(key string)
}
