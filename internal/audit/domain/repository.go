package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// ListFilter narrows the audit scan.
type ListFilter struct {
	ClaimID   snowflake.ID
	Action    Action
	ActorRole string
	StartAt   *time.Time
	EndAt     *time.Time
	Cursor    *Cursor
	Limit     int
}

// Cursor is the keyset position for audit listing.
type Cursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type Repository interface {
	Insert(ctx context.Context, event *AuditEvent) error
	List(ctx context.Context, filter ListFilter) ([]*AuditEvent, error)
}
