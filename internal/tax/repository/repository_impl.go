package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/tax/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) ReplaceAll(ctx context.Context, tx *gorm.DB, claimID snowflake.ID, entries []*domain.TaxEntry) error {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	conn = conn.WithContext(ctx)

	if err := conn.Where("claim_id = ?", claimID).Delete(&domain.TaxEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return conn.Create(entries).Error
}

func (r *repo) ListByClaim(ctx context.Context, claimID snowflake.ID) ([]domain.TaxEntry, error) {
	var entries []domain.TaxEntry
	err := r.db.WithContext(ctx).
		Where("claim_id = ?", claimID).
		Order("created_at asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
