package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated      EventType = "user_created"
	EventPassengerCreated EventType = "passenger_created"
)

// AccountKind distinguishes the two account namespaces.
type AccountKind string

const (
	AccountKindUser      AccountKind = "USER"
	AccountKindPassenger AccountKind = "PASSENGER"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Kind      AccountKind `json:"kind"`
	AccountID int64       `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a fresh id and timestamp.
func NewEvent(eventType EventType, kind AccountKind, accountID int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Kind:      kind,
		AccountID: accountID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserCreatedPayload is consumed by the mailer that delivers first-login
// credentials. It is the only payload that carries a plaintext password.
type UserCreatedPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// PassengerCreatedPayload is an audit record; it never carries credentials.
type PassengerCreatedPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
