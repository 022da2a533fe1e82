package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
)

// Event represents a domain event emitted by services. EntityID names the
// user or product the event concerns; ActorID, when set, is the
// authenticated user who caused it.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// ProductUpdatedPayload payload.
type ProductUpdatedPayload struct {
	Name          string   `json:"name"`
	ChangedFields []string `json:"changed_fields"`
}

// ProductDeletedPayload payload.
type ProductDeletedPayload struct {
	Name string `json:"name"`
}
