// Package journal provides an append-only store for the registry's domain
// events, with optimistic per-stream versioning. A memory store covers tests
// and simulation; a SQLite store covers durable runs.
package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is a single journal record.
type Event struct {
	// ID is a unique record identifier.
	ID string `json:"id"`

	// Stream groups related events; versions are per stream.
	Stream string `json:"stream"`

	// Type is the domain event name.
	Type string `json:"type"`

	// Data is the JSON-encoded event payload.
	Data json.RawMessage `json:"data,omitempty"`

	// Version is the record's position in its stream, assigned on append.
	Version int `json:"version"`

	// Timestamp records when the event was created.
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event record with a fresh id, encoding data as JSON.
func NewEvent(stream, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode event data: %w", err)
		}
		raw = encoded
	}
	return &Event{
		ID:        uuid.New().String(),
		Stream:    stream,
		Type:      eventType,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}, nil
}
