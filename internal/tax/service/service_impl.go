package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/actorctx"
	auditdomain "github.com/smartpemda/sitagih/internal/audit/domain"
	claimdomain "github.com/smartpemda/sitagih/internal/claim/domain"
	"github.com/smartpemda/sitagih/internal/clock"
	"github.com/smartpemda/sitagih/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	ClaimRepo claimdomain.Repository
	AuditSvc  auditdomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	claimRepo claimdomain.Repository
	audit     auditdomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("tax.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		claimRepo: p.ClaimRepo,
		audit:     p.AuditSvc,
	}
}

func (s *Service) Replace(ctx context.Context, actor actorctx.Actor, claimID snowflake.ID, entries []domain.EntryInput) ([]domain.TaxEntry, error) {
	if !actor.Valid() {
		return nil, claimdomain.ErrInvalidActor
	}
	if !actor.Is(actorctx.RolePajak) {
		return nil, fmt.Errorf("%w: need %s, have %s", claimdomain.ErrForbidden, actorctx.RolePajak, actor.Role)
	}
	if len(entries) == 0 {
		return nil, domain.ErrNoEntries
	}
	for i, entry := range entries {
		if strings.TrimSpace(entry.TaxType) == "" {
			return nil, fmt.Errorf("%w: entry %d", domain.ErrEmptyType, i+1)
		}
		if entry.Amount <= 0 {
			return nil, fmt.Errorf("%w: entry %d", domain.ErrInvalidAmount, i+1)
		}
	}

	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != claimdomain.StatusSelesai {
		return nil, fmt.Errorf("%w: claim is %s", domain.ErrNotDisbursed, claim.Status)
	}

	now := s.clock.Now()
	rows := make([]*domain.TaxEntry, 0, len(entries))
	for _, entry := range entries {
		taxType := strings.TrimSpace(entry.TaxType)
		accountCode := strings.TrimSpace(entry.AccountCode)
		if accountCode == "" {
			accountCode = domain.AccountCodeFor(taxType)
		}
		rows = append(rows, &domain.TaxEntry{
			ID:          s.genID.Generate(),
			ClaimID:     claim.ID,
			TaxType:     taxType,
			AccountCode: accountCode,
			Amount:      entry.Amount,
			NTPN:        strings.TrimSpace(entry.NTPN),
			NTB:         strings.TrimSpace(entry.NTB),
			BillingCode: strings.TrimSpace(entry.BillingCode),
			EnteredBy:   actor.ID,
			CreatedAt:   now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.ReplaceAll(ctx, tx, claim.ID, rows); err != nil {
			return fmt.Errorf("replace tax entries: %w", err)
		}

		affected, err := s.claimRepo.UpdateTransition(ctx, tx, claim.ID, claim.Version, map[string]any{
			"tax_status": claimdomain.TaxStatusSelesai,
		})
		if err != nil {
			return fmt.Errorf("mark tax complete: %w", err)
		}
		if affected == 0 {
			return claimdomain.ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.audit.Record(ctx, auditdomain.RecordInput{
		ClaimID: claim.ID,
		Actor:   actor,
		Action:  auditdomain.ActionUpdated,
		Detail:  fmt.Sprintf("entri pajak diganti, %d baris", len(rows)),
		Metadata: map[string]any{
			"entry_count": len(rows),
		},
	})

	out := make([]domain.TaxEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, claimID snowflake.ID) ([]domain.TaxEntry, error) {
	if _, err := s.claimRepo.FindByID(ctx, claimID); err != nil {
		return nil, err
	}
	return s.repo.ListByClaim(ctx, claimID)
}
