package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists tax entries. ReplaceAll must run on the caller's
// transaction so the swap commits together with the claim's tax flag.
type Repository interface {
	ReplaceAll(ctx context.Context, tx *gorm.DB, claimID snowflake.ID, entries []*TaxEntry) error
	ListByClaim(ctx context.Context, claimID snowflake.ID) ([]TaxEntry, error)
}
