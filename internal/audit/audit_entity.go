package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one persisted admin mutation.
type AuditEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    string    `gorm:"type:varchar(64);index"`
	Action     string    `gorm:"type:varchar(100);not null"`
	Resource   string    `gorm:"type:varchar(100);not null;index"`
	ResourceID string    `gorm:"type:varchar(64)"`
	Payload    []byte    `gorm:"type:jsonb"`
	RequestID  string    `gorm:"type:varchar(64)"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (AuditEntry) TableName() string { return "audit_entries" }
