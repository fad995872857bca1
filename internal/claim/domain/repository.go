package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/numbering"
	"gorm.io/gorm"
)

// ListFilter narrows the repository scan for queue views.
type ListFilter struct {
	Status     ClaimStatus
	AgencyCode string
	From       *time.Time
	To         *time.Time
	Cursor     *Cursor
	Limit      int
}

// Cursor is the keyset position for claim listing.
type Cursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

// Repository is the persistence contract of the claim workflow. It doubles as
// the numbering.Source period scan.
type Repository interface {
	numbering.Source

	Create(ctx context.Context, claim *Claim) error
	FindByID(ctx context.Context, id snowflake.ID) (*Claim, error)
	List(ctx context.Context, filter ListFilter) ([]*Claim, error)

	// UpdateTransition applies fields to the claim iff the stored version
	// still matches expectedVersion, bumping version in the same statement.
	// Returns the number of rows touched; zero means a concurrent transition
	// won.
	UpdateTransition(ctx context.Context, tx *gorm.DB, id snowflake.ID, expectedVersion int64, fields map[string]any) (int64, error)

	// MaxDisbursementSeq returns the highest disbursement sequence whose SP2D
	// registration stamp falls in [from, to).
	MaxDisbursementSeq(ctx context.Context, from, to time.Time) (int64, error)
}
