package journal

import (
	"context"
	"errors"
	"sync"
)

// ErrConcurrencyConflict is returned when an append's expected version does
// not match the stream's current version.
var ErrConcurrencyConflict = errors.New("journal: stream version conflict")

// Store persists event streams.
type Store interface {
	// Append adds events to a stream. expectedVersion must equal the
	// stream's current version (-1 for a new stream). Returns the new
	// current version.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns events for a stream starting at fromVersion, in order.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error)

	// StreamVersion returns the stream's current version, -1 if it does
	// not exist.
	StreamVersion(ctx context.Context, stream string) (int, error)

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append adds events to a stream.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := len(s.streams[stream]) - 1
	if expectedVersion != current {
		return 0, ErrConcurrencyConflict
	}

	for _, event := range events {
		current++
		stored := *event
		stored.Stream = stream
		stored.Version = current
		s.streams[stream] = append(s.streams[stream], &stored)
	}
	return current, nil
}

// Read returns events for a stream starting at fromVersion.
func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []*Event
	for _, event := range s.streams[stream] {
		if event.Version >= fromVersion {
			copied := *event
			events = append(events, &copied)
		}
	}
	return events, nil
}

// StreamVersion returns the stream's current version.
func (s *MemoryStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[stream]) - 1, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
