package events

import "time"

const AuditRecordedType = "audit_recorded"

// AuditRecordedEvent is published for every accepted admin mutation. Consumers use Resource to
// drop cached lists.
type AuditRecordedEvent struct {
	EventType  string    `json:"event_type"`
	EntryID    string    `json:"entry_id"`
	RequestID  string    `json:"request_id,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
