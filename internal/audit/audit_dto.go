package audit

import (
	"encoding/json"
	"time"
)

type ListQuery struct {
	Resource string
	ActorID  string
	Page     int
	PageSize int
}

type EntryResponse struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID string          `json:"resourceId"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	RequestID  string          `json:"requestId"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Page struct {
	Items    []EntryResponse
	Total    int64
	Page     int
	PageSize int
}

func toResponse(e AuditEntry) EntryResponse {
	out := EntryResponse{
		ID:         e.ID.String(),
		ActorID:    e.ActorID,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		RequestID:  e.RequestID,
		CreatedAt:  e.CreatedAt,
	}
	if len(e.Payload) > 0 {
		out.Payload = json.RawMessage(e.Payload)
	}
	return out
}
