package events

import "time"

// Event types
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
)

// UserEventsStream is the Redis stream user events are appended to.
const UserEventsStream = "user.events"

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserCreatedEvent struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	EmailAddress string `json:"emailAddress"`
}

type UserUpdatedEvent struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	EmailAddress string `json:"emailAddress"`
}
