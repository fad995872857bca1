package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/actorctx"
	"github.com/smartpemda/sitagih/pkg/db/pagination"
)

// RecordInput describes one workflow action to persist.
type RecordInput struct {
	ClaimID  snowflake.ID
	Actor    actorctx.Actor
	Action   Action
	Detail   string
	Metadata map[string]any
}

type ListRequest struct {
	pagination.Pagination
	ClaimID   snowflake.ID
	Action    Action
	ActorRole string
	StartAt   *time.Time
	EndAt     *time.Time
}

type ListResponse struct {
	pagination.PageInfo
	Events []AuditEvent `json:"audit_events"`
}

// Service records and lists audit events. Record failures are the caller's
// to tolerate: a lost audit row never fails the primary transition.
type Service interface {
	Record(ctx context.Context, in RecordInput) error
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

var (
	ErrInvalidAction    = errors.New("invalid_action")
	ErrInvalidPageToken = errors.New("invalid_page_token")
	ErrInvalidTimeRange = errors.New("invalid_time_range")
)
