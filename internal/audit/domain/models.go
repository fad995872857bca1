// Package domain contains the audit trail model for claim workflow actions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Action classifies an audited workflow event.
type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionStatusChanged Action = "status_changed"
	ActionCorrected     Action = "corrected"
)

// AuditEvent is one recorded workflow action.
type AuditEvent struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	ClaimID   snowflake.ID      `gorm:"not null;index" json:"claim_id"`
	ActorID   snowflake.ID      `gorm:"not null;index" json:"actor_id"`
	ActorRole string            `gorm:"type:text;not null" json:"actor_role"`
	ActorName string            `gorm:"type:text" json:"actor_name"`
	Action    Action            `gorm:"type:text;not null;index" json:"action"`
	Detail    string            `gorm:"type:text" json:"detail"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	RequestID string            `gorm:"type:text" json:"request_id"`
	CreatedAt time.Time         `gorm:"not null;index" json:"created_at"`
}

// TableName sets the database table name.
func (AuditEvent) TableName() string { return "audit_events" }
