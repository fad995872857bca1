package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/notification/domain"
	"github.com/smartpemda/sitagih/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db    *gorm.DB
	store repository.Repository[domain.Notification]
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repo{
		db:    db,
		store: repository.ProvideStore[domain.Notification](db),
	}
}

func (r *repo) Insert(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return nil
	}
	return r.store.Create(ctx, n)
}

func (r *repo) ListByUser(ctx context.Context, userID snowflake.ID, limit int) ([]*domain.Notification, error) {
	opts := []repository.QueryOption{repository.OrderBy("created_at desc, id desc")}
	if limit > 0 {
		opts = append(opts, repository.Limit(limit))
	}
	return r.store.Find(ctx, &domain.Notification{UserID: userID}, opts...)
}

// MarkRead is conditional on ownership and unread state, and the caller needs
// the affected count, so it bypasses the generic store.
func (r *repo) MarkRead(ctx context.Context, userID, id snowflake.ID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", time.Now().UTC())
	return res.RowsAffected, res.Error
}
