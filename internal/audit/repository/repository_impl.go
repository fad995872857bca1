package repository

import (
	"context"
	"strings"

	"github.com/smartpemda/sitagih/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, event *domain.AuditEvent) error {
	if event == nil {
		return nil
	}
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter) ([]*domain.AuditEvent, error) {
	var events []*domain.AuditEvent
	stmt := r.db.WithContext(ctx).Model(&domain.AuditEvent{})

	if filter.ClaimID != 0 {
		stmt = stmt.Where("claim_id = ?", filter.ClaimID)
	}
	if action := strings.TrimSpace(string(filter.Action)); action != "" {
		stmt = stmt.Where("action = ?", action)
	}
	if role := strings.TrimSpace(filter.ActorRole); role != "" {
		stmt = stmt.Where("actor_role = ?", role)
	}
	if filter.StartAt != nil {
		stmt = stmt.Where("created_at >= ?", filter.StartAt.UTC())
	}
	if filter.EndAt != nil {
		stmt = stmt.Where("created_at <= ?", filter.EndAt.UTC())
	}
	if filter.Cursor != nil {
		stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt,
			filter.Cursor.CreatedAt,
			filter.Cursor.ID,
		)
	}

	stmt = stmt.Order("created_at desc, id desc")
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit + 1)
	}

	if err := stmt.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
