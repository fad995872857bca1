package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Service delivers user notifications. Like audit, delivery failure never
// fails the transition that triggered it.
type Service interface {
	Notify(ctx context.Context, userID, claimID snowflake.ID, title, body string) error
	ListByUser(ctx context.Context, userID snowflake.ID, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id snowflake.ID) error
}

type Repository interface {
	Insert(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID snowflake.ID, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, userID, id snowflake.ID) (int64, error)
}
