package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/clock"
	"github.com/smartpemda/sitagih/internal/notification/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("notification_not_found")

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("notification.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Notify(ctx context.Context, userID, claimID snowflake.ID, title, body string) error {
	if userID == 0 || strings.TrimSpace(title) == "" {
		return nil
	}

	n := domain.Notification{
		ID:        s.genID.Generate(),
		UserID:    userID,
		ClaimID:   claimID,
		Title:     title,
		Body:      body,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, &n); err != nil {
		s.log.Warn("failed to insert notification",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *Service) ListByUser(ctx context.Context, userID snowflake.ID, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	items, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Notification, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id snowflake.ID) error {
	affected, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
