package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventValidate EventType = "validate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	TraceID   string    `json:"trace_id,omitempty"`
}

// ValidationEvent reports the outcome of one top-level validation.
type ValidationEvent struct {
	EventBase
	SchemaName string        `json:"schema_name,omitempty"` // Empty for inline schemas
	Source     string        `json:"source,omitempty"`      // Caller: "cli", "http", "mcp" or "library"
	Valid      bool          `json:"valid"`
	Duration   time.Duration `json:"duration"`
}

// ValidationHooks defines callbacks for validation observability.
type ValidationHooks struct {
	OnValidate func(context.Context, *ValidationEvent)
}
