package domain

import "time"

// Activity is one recorded catalog change, built from a published catalog event.
type Activity struct {
	ID         string    `json:"id" db:"id"`
	Event      string    `json:"event" db:"event"`
	ResourceID string    `json:"resourceId" db:"resource_id"`
	Summary    string    `json:"summary" db:"summary"`
	Actor      string    `json:"actor" db:"actor"`
	TraceID    string    `json:"traceId" db:"trace_id"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}
