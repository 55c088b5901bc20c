package service

import (
	"context"
	"time"
)

const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// LookupEvent records one profile lookup.
type LookupEvent struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	SessionID  string    `json:"session_id,omitempty"`
	Outcome    string    `json:"outcome"`
	Status     int       `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishLookup(ctx context.Context, evt LookupEvent) error
}
