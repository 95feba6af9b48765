package events

import (
	"context"
	"time"
)

// Event is anything the relay announces on the bus.
type Event interface {
	EventType() string
	// Key identifies the fact being announced; republishing the same key is deduplicated.
	Key() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// Publisher is satisfied by the NATS publisher and by test fakes.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LeadEvent carries lead metadata only, never the transcript.
type LeadEvent struct {
	Type       string
	Id         string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e LeadEvent) EventType() string               { return e.Type }
func (e LeadEvent) Key() string                     { return e.Id }
func (e LeadEvent) Payload() map[string]interface{} { return e.Data }
func (e LeadEvent) Timestamp() time.Time            { return e.OccurredAt }
