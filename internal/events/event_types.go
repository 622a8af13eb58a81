package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCompanyCreated EventType = "company_created"
	EventCompanyUpdated EventType = "company_updated"
	EventCompanyDeleted EventType = "company_deleted"
	EventJobCreated     EventType = "job_created"
	EventJobUpdated     EventType = "job_updated"
	EventJobDeleted     EventType = "job_deleted"
	EventUserCreated    EventType = "user_created"
	EventUserUpdated    EventType = "user_updated"
	EventUserDeleted    EventType = "user_deleted"
	EventUserPromoted   EventType = "user_promoted"
)

// AllEventTypes lists every type the services publish.
var AllEventTypes = []EventType{
	EventCompanyCreated, EventCompanyUpdated, EventCompanyDeleted,
	EventJobCreated, EventJobUpdated, EventJobDeleted,
	EventUserCreated, EventUserUpdated, EventUserDeleted, EventUserPromoted,
}

// Event records a committed change to a resource.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Resource  string    `json:"resource"`
	Key       string    `json:"key"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// NewEvent stamps an event with an id and the current time. Actor is empty
// for anonymous callers.
func NewEvent(eventType EventType, resource, key, actor string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Resource:  resource,
		Key:       key,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UpdatedFieldsPayload names the columns a partial update touched.
type UpdatedFieldsPayload struct {
	Fields []string `json:"fields"`
}
