// Package webhook provides outbound project webhooks.
package webhook

import (
	"encoding"
	"errors"
	"strings"
	"time"
)

// Event is a webhook event.
type Event int

const (
	// EventProject is a project event.
	EventProject Event = iota
	// EventShare is a project share event.
	EventShare
	// EventStage is a stage event.
	EventStage
	// EventContact is a project contact event.
	EventContact
)

var eventStrings = map[Event]string{
	EventProject: "project",
	EventShare:   "share",
	EventStage:   "stage",
	EventContact: "contact",
}

// String returns the string representation of the event.
func (e Event) String() string {
	return eventStrings[e]
}

var stringEvent = map[string]Event{
	"project": EventProject,
	"share":   EventShare,
	"stage":   EventStage,
	"contact": EventContact,
}

// ErrInvalidEvent is returned when the event is invalid.
var ErrInvalidEvent = errors.New("invalid event")

// ParseEvent parses an event string and returns the event.
func ParseEvent(s string) (Event, error) {
	if e, ok := stringEvent[strings.ToLower(s)]; ok {
		return e, nil
	}

	return -1, ErrInvalidEvent
}

var (
	_ encoding.TextMarshaler   = Event(0)
	_ encoding.TextUnmarshaler = (*Event)(nil)
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Event) UnmarshalText(text []byte) error {
	event, err := ParseEvent(string(text))
	if err != nil {
		return err
	}

	*e = event
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Event) MarshalText() (text []byte, err error) {
	es := e.String()
	if es == "" {
		return nil, ErrInvalidEvent
	}

	return []byte(es), nil
}

// EventPayload is an interface for webhook event payloads.
type EventPayload interface {
	// Event returns the event type.
	Event() Event
	// ProjectID returns the project ID of the payload.
	ProjectID() int64
}

// Project is the project payload common to all events.
type Project struct {
	// ID is the project ID.
	ID int64 `json:"id" url:"id"`
	// Name is the project name.
	Name string `json:"name" url:"name"`
	// Address is the project address.
	Address string `json:"address,omitempty" url:"address,omitempty"`
	// Status is the project status.
	Status string `json:"status" url:"status"`
	// OrgID is the ID of the owning organization.
	OrgID int64 `json:"org_id" url:"org_id"`
	// HTTPURL is the project API URL.
	HTTPURL string `json:"http_url" url:"http_url"`
	// CreatedAt is the project creation time.
	CreatedAt time.Time `json:"created_at" url:"created_at"`
	// UpdatedAt is the project last update time.
	UpdatedAt time.Time `json:"updated_at" url:"updated_at"`
}

// User is the user payload for webhook events.
type User struct {
	// ID is the user ID.
	ID int64 `json:"id" url:"id"`
	// Email is the user email.
	Email string `json:"email" url:"email"`
}

// Common is the common payload for all webhook events.
type Common struct {
	// EventType is the event type.
	EventType Event `json:"event" url:"event"`
	// Project is the project the event belongs to.
	Project Project `json:"project" url:"project"`
	// Sender is the user who triggered the event.
	Sender User `json:"sender" url:"sender"`
}

// Event implements EventPayload.
func (c Common) Event() Event {
	return c.EventType
}

// ProjectID implements EventPayload.
func (c Common) ProjectID() int64 {
	return c.Project.ID
}
