package result

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Namer picks the name of a newly published result.
type Namer interface {
	Name(ctx context.Context, kind Kind) (string, error)
}

// UUIDNamer names results with time-ordered UUIDv7 strings, so a listing
// sorted by name is sorted by publish time.
type UUIDNamer struct{}

// Name returns a fresh UUIDv7.
func (UUIDNamer) Name(context.Context, Kind) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("result: generate name: %w", err)
	}
	return id.String(), nil
}

// SequenceNamer produces <prefix>-000001, <prefix>-000002, ... It is meant for
// tests and single-process hosts that want predictable names.
type SequenceNamer struct {
	Prefix string
	n      atomic.Uint64
}

// Name returns the next name in the sequence.
func (s *SequenceNamer) Name(context.Context, Kind) (string, error) {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "run"
	}
	return fmt.Sprintf("%s-%06d", prefix, s.n.Add(1)), nil
}
