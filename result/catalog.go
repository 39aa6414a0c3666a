package result

import (
	"context"
	"sync"
	"time"
)

// Entry is one catalog record.
type Entry struct {
	Handle      Handle
	Size        int64
	Compression Compression
	Codec       string
	Published   time.Time
}

// Catalog is an append-only log of published results. Deleting a result does
// not remove its entry.
type Catalog interface {
	// Record appends e.
	Record(ctx context.Context, e Entry) error
	// Latest returns the most recently recorded entry of kind, or
	// ErrNotFound.
	Latest(ctx context.Context, kind Kind) (Entry, error)
	// List returns the entries of kind in record order.
	List(ctx context.Context, kind Kind) ([]Entry, error)
}

// MemoryCatalog is an in-process Catalog.
type MemoryCatalog struct {
	mu      sync.RWMutex
	entries map[Kind][]Entry
}

// NewMemoryCatalog returns an empty catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{entries: make(map[Kind][]Entry)}
}

// Record appends e.
func (c *MemoryCatalog) Record(_ context.Context, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.Handle.Kind] = append(c.entries[e.Handle.Kind], e)
	return nil
}

// Latest returns the last entry of kind.
func (c *MemoryCatalog) Latest(_ context.Context, kind Kind) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	es := c.entries[kind]
	if len(es) == 0 {
		return Entry{}, ErrNotFound
	}
	return es[len(es)-1], nil
}

// List returns a copy of the entries of kind.
func (c *MemoryCatalog) List(_ context.Context, kind Kind) ([]Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Entry(nil), c.entries[kind]...), nil
}
