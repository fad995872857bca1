package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/actorctx"
	auditdomain "github.com/smartpemda/sitagih/internal/audit/domain"
	"github.com/smartpemda/sitagih/internal/checklist"
	claimdomain "github.com/smartpemda/sitagih/internal/claim/domain"
	"github.com/smartpemda/sitagih/internal/clock"
	"github.com/smartpemda/sitagih/internal/config"
	"github.com/smartpemda/sitagih/internal/numbering"
	notificationdomain "github.com/smartpemda/sitagih/internal/notification/domain"
	obsmetrics "github.com/smartpemda/sitagih/internal/observability/metrics"
	"github.com/smartpemda/sitagih/pkg/db"
	"github.com/smartpemda/sitagih/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Racing mints in one period can derive the same sequence; the unique indexes
// reject the loser and the transition is re-derived from fresh state.
const maxMintAttempts = 3

type Params struct {
	fx.In

	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Cfg       config.Config
	Repo      claimdomain.Repository
	Gen       *numbering.Generator
	AuditSvc  auditdomain.Service
	NotifySvc notificationdomain.Service
	Metrics   *obsmetrics.WorkflowMetrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	cfg     config.Config
	repo    claimdomain.Repository
	gen     *numbering.Generator
	audit   auditdomain.Service
	notify  notificationdomain.Service
	metrics *obsmetrics.WorkflowMetrics
}

func NewService(p Params) claimdomain.Service {
	return &Service{
		log:     p.Log.Named("claim.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		cfg:     p.Cfg,
		repo:    p.Repo,
		gen:     p.Gen,
		audit:   p.AuditSvc,
		notify:  p.NotifySvc,
		metrics: p.Metrics,
	}
}

func (s *Service) Submit(ctx context.Context, actor actorctx.Actor, req claimdomain.SubmitRequest) (*claimdomain.Claim, error) {
	if err := requireRole(actor, actorctx.RoleSKPD); err != nil {
		return nil, err
	}
	if req.GrossAmount < 0 {
		return nil, fmt.Errorf("%w: gross amount must be non-negative", claimdomain.ErrInvalidAmount)
	}
	for field, value := range map[string]string{
		"agency_code":    req.AgencyCode,
		"agency_name":    req.AgencyName,
		"claim_type":     req.ClaimType,
		"tagihan_type":   req.TagihanType,
		"funding_source": req.FundingSource,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s", claimdomain.ErrMissingField, field)
		}
	}

	var claim *claimdomain.Claim
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		now := s.clock.Now()
		seq, err := s.gen.Next(ctx, numbering.SchemeSubmission, now)
		if err != nil {
			return nil, err
		}

		spm, err := numbering.BuildSpmNumber(req.ClaimType, s.cfg.ScheduleCode, req.AgencyCode, s.cfg.RegionCode, seq, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", claimdomain.ErrSpmIncomplete, err)
		}
		spmNumber := spm.String()

		claim = &claimdomain.Claim{
			ID:            s.genID.Generate(),
			AgencyCode:    strings.TrimSpace(req.AgencyCode),
			AgencyName:    strings.TrimSpace(req.AgencyName),
			SpmNumber:     &spmNumber,
			ClaimType:     strings.TrimSpace(req.ClaimType),
			TagihanType:   strings.TrimSpace(req.TagihanType),
			FundingSource: strings.TrimSpace(req.FundingSource),
			Description:   strings.TrimSpace(req.Description),
			GrossAmount:   req.GrossAmount,
			Status:        claimdomain.StatusMenungguRegistrasi,
			TaxStatus:     claimdomain.TaxStatusBelum,
			SubmittedAt:   now,
			SubmitterID:   actor.ID,
			SubmitterName: actor.DisplayName,
			Version:       1,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		err = s.repo.Create(ctx, claim)
		if err == nil {
			break
		}
		if db.IsDuplicateKeyErr(err) && attempt < maxMintAttempts-1 {
			s.noteRetry("submit")
			continue
		}
		return nil, fmt.Errorf("create claim: %w", err)
	}

	s.emit(ctx, claim.ID, actor, auditdomain.ActionCreated,
		fmt.Sprintf("tagihan diajukan dengan nomor SPM %s", *claim.SpmNumber),
		map[string]any{"spm_number": *claim.SpmNumber, "gross_amount": claim.GrossAmount})
	s.noteTransition("submit", claim.Status)

	return claim, nil
}

func (s *Service) Register(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (*claimdomain.Claim, error) {
	if err := requireRole(actor, actorctx.RoleRegistrasi); err != nil {
		return nil, err
	}

	return s.transition(ctx, actor, id, "register", func(claim *claimdomain.Claim, now time.Time) (map[string]any, error) {
		if claim.Status != claimdomain.StatusMenungguRegistrasi {
			return nil, fmt.Errorf("%w: register requires %s, claim is %s",
				claimdomain.ErrInvalidStatus, claimdomain.StatusMenungguRegistrasi, claim.Status)
		}
		if claim.LockedByOther(actor.ID) {
			return nil, claimdomain.ErrClaimLocked
		}

		seq, err := s.gen.Next(ctx, numbering.SchemeRegistration, now)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"registration_number": numbering.FormatRegistrationNumber(now, seq),
			"registered_at":       now,
			"registrar_name":      actor.DisplayName,
			"status":              claimdomain.StatusMenungguVerifikasi,
			"locked_by":           nil,
			"locked_at":           nil,
		}, nil
	})
}

func (s *Service) VerifyForward(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req claimdomain.VerifyRequest) (*claimdomain.Claim, error) {
	if err := requireRole(actor, actorctx.RoleVerifikasi); err != nil {
		return nil, err
	}
	if err := checklist.Validate(req.Checklist); err != nil {
		return nil, fmt.Errorf("%w: %v", claimdomain.ErrMissingField, err)
	}
	if !checklist.AllSatisfied(req.Checklist) {
		unsatisfied := checklist.Unsatisfied(req.Checklist)
		s.noteRejection("verify_forward", "checklist_item_unsatisfied")
		return nil, fmt.Errorf("%w: %d item belum memenuhi syarat",
			claimdomain.ErrChecklistIncomplete, len(unsatisfied))
	}

	return s.verify(ctx, actor, id, "verify_forward", req, claimdomain.StatusDiteruskan)
}

func (s *Service) VerifyReturn(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req claimdomain.VerifyRequest) (*claimdomain.Claim, error) {
	if err := requireRole(actor, actorctx.RoleVerifikasi); err != nil {
		return nil, err
	}
	if err := checklist.Validate(req.Checklist); err != nil {
		return nil, fmt.Errorf("%w: %v", claimdomain.ErrMissingField, err)
	}
	if checklist.AllSatisfied(req.Checklist) {
		s.noteRejection("verify_return", "checklist_fully_satisfied")
		return nil, fmt.Errorf("%w: seluruh item memenuhi syarat, gunakan teruskan",
			claimdomain.ErrChecklistAllSatisfied)
	}

	claim, err := s.verify(ctx, actor, id, "verify_return", req, claimdomain.StatusDikembalikan)
	if err != nil {
		return nil, err
	}

	s.notifySubmitter(ctx, claim,
		"Tagihan dikembalikan",
		fmt.Sprintf("Tagihan %s dikembalikan oleh verifikator: %s", deref(claim.SpmNumber), req.Note))
	return claim, nil
}

func (s *Service) verify(ctx context.Context, actor actorctx.Actor, id snowflake.ID, action string, req claimdomain.VerifyRequest, next claimdomain.ClaimStatus) (*claimdomain.Claim, error) {
	snapshot, err := json.Marshal(req.Checklist)
	if err != nil {
		return nil, fmt.Errorf("marshal checklist: %w", err)
	}

	return s.transition(ctx, actor, id, action, func(claim *claimdomain.Claim, now time.Time) (map[string]any, error) {
		if claim.Status != claimdomain.StatusMenungguVerifikasi {
			return nil, fmt.Errorf("%w: verification requires %s, claim is %s",
				claimdomain.ErrInvalidStatus, claimdomain.StatusMenungguVerifikasi, claim.Status)
		}
		if claim.LockedByOther(actor.ID) {
			return nil, claimdomain.ErrClaimLocked
		}

		seq, err := s.gen.Next(ctx, numbering.SchemeVerification, now)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"verification_number": numbering.FormatVerificationNumber(now, seq),
			"verified_at":         now,
			"verifier_name":       actor.DisplayName,
			"verification_note":   strings.TrimSpace(req.Note),
			"checklist":           snapshot,
			"status":              next,
			"locked_by":           nil,
			"locked_at":           nil,
		}, nil
	})
}

func (s *Service) Correct(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req claimdomain.CorrectRequest) (*claimdomain.Claim, error) {
	if err := requireRole(actor, actorctx.RoleKoreksi); err != nil {
		return nil, err
	}
	if !claimdomain.ValidCorrectionReason(req.Reason) {
		return nil, fmt.Errorf("%w: %q", claimdomain.ErrInvalidReason, req.Reason)
	}

	claim, err := s.transition(ctx, actor, id, "correct", func(claim *claimdomain.Claim, now time.Time) (map[string]any, error) {
		if claim.Status != claimdomain.StatusMenungguVerifikasi {
			return nil, fmt.Errorf("%w: correction requires %s, claim is %s",
				claimdomain.ErrInvalidStatus, claimdomain.StatusMenungguVerifikasi, claim.Status)
		}
		if claim.LockedByOther(actor.ID) {
			return nil, claimdomain.ErrClaimLocked
		}
		if claim.RegistrationNumber == nil {
			return nil, fmt.Errorf("%w: registration_number", claimdomain.ErrMissingField)
		}

		seq, err := s.gen.Next(ctx, numbering.SchemeCorrection, now)
		if err != nil {
			return nil, err
		}
		correctionNumber, err := numbering.FormatCorrectionNumber(*claim.RegistrationNumber, seq)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", numbering.ErrGeneration, err)
		}

		// Back-fill the verification display fields so history views render
		// the budgetary return as a verification event.
		return map[string]any{
			"correction_number":   correctionNumber,
			"correction_reason":   req.Reason,
			"corrector_id":        actor.ID,
			"corrected_at":        now,
			"verification_number": correctionNumber,
			"verified_at":         now,
			"verifier_name":       actor.DisplayName,
			"status":              claimdomain.StatusDikembalikan,
			"locked_by":           nil,
			"locked_at":           nil,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, claim.ID, actor, auditdomain.ActionCorrected,
		fmt.Sprintf("tagihan dikembalikan dengan nomor koreksi %s", deref(claim.CorrectionNumber)),
		map[string]any{"correction_number": deref(claim.CorrectionNumber), "reason": string(req.Reason)})
	s.notifySubmitter(ctx, claim,
		"Tagihan dikembalikan (koreksi)",
		fmt.Sprintf("Tagihan %s dikembalikan: %s", deref(claim.SpmNumber), req.Reason))

	return claim, nil
}

func (s *Service) Resubmit(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (*claimdomain.Claim, error) {
	if err := requireRole(actor, actorctx.RoleSKPD); err != nil {
		return nil, err
	}

	return s.transition(ctx, actor, id, "resubmit", func(claim *claimdomain.Claim, now time.Time) (map[string]any, error) {
		if claim.Status != claimdomain.StatusDikembalikan {
			return nil, fmt.Errorf("%w: resubmit requires %s, claim is %s",
				claimdomain.ErrInvalidStatus, claimdomain.StatusDikembalikan, claim.Status)
		}
		if claim.SubmitterID != actor.ID && actor.Role != actorctx.RoleAdmin {
			return nil, fmt.Errorf("%w: only the submitter may resubmit", claimdomain.ErrForbidden)
		}

		// History of the previous cycle stays on the record; only the status
		// returns to the registration queue.
		return map[string]any{
			"status":    claimdomain.StatusMenungguRegistrasi,
			"locked_by": nil,
			"locked_at": nil,
		}, nil
	})
}

func (s *Service) RegisterSP2D(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req claimdomain.SP2DRequest) (*claimdomain.Claim, error) {
	if err := requireRole(actor, actorctx.RoleSP2D); err != nil {
		return nil, err
	}
	if req.DisbursedAt.IsZero() {
		return nil, fmt.Errorf("%w: disbursed_at", claimdomain.ErrMissingField)
	}
	if strings.TrimSpace(req.BankName) == "" {
		return nil, fmt.Errorf("%w: bank_name", claimdomain.ErrMissingField)
	}
	if req.BankHandoverAt.IsZero() {
		return nil, fmt.Errorf("%w: bank_handover_at", claimdomain.ErrMissingField)
	}

	return s.transition(ctx, actor, id, "register_sp2d", func(claim *claimdomain.Claim, now time.Time) (map[string]any, error) {
		if claim.Status != claimdomain.StatusDiteruskan {
			return nil, fmt.Errorf("%w: SP2D registration requires %s, claim is %s",
				claimdomain.ErrInvalidStatus, claimdomain.StatusDiteruskan, claim.Status)
		}
		if claim.LockedByOther(actor.ID) {
			return nil, claimdomain.ErrClaimLocked
		}

		from, to := numbering.MonthRange(now)
		maxSeq, err := s.repo.MaxDisbursementSeq(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: scan disbursement: %v", numbering.ErrGeneration, err)
		}

		return map[string]any{
			"disbursed_at":       req.DisbursedAt.UTC(),
			"bank_name":          strings.TrimSpace(req.BankName),
			"bank_handover_at":   req.BankHandoverAt.UTC(),
			"disbursement_note":  strings.TrimSpace(req.Note),
			"disbursement_seq":   maxSeq + 1,
			"sp2d_registered_at": now,
			"status":             claimdomain.StatusSelesai,
			"locked_by":          nil,
			"locked_at":          nil,
		}, nil
	})
}

func (s *Service) Lock(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (*claimdomain.Claim, error) {
	if !actor.Is(actorctx.RoleVerifikasi) && !actor.Is(actorctx.RoleKoreksi) {
		return nil, fmt.Errorf("%w: %s", claimdomain.ErrForbidden, actor.Role)
	}

	return s.transition(ctx, actor, id, "lock", func(claim *claimdomain.Claim, now time.Time) (map[string]any, error) {
		if claim.LockedByOther(actor.ID) {
			return nil, claimdomain.ErrClaimLocked
		}
		return map[string]any{
			"locked_by": actor.ID,
			"locked_at": now,
		}, nil
	})
}

func (s *Service) Unlock(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (*claimdomain.Claim, error) {
	return s.transition(ctx, actor, id, "unlock", func(claim *claimdomain.Claim, now time.Time) (map[string]any, error) {
		if claim.LockedBy == nil {
			return map[string]any{}, nil
		}
		if *claim.LockedBy != actor.ID && actor.Role != actorctx.RoleAdmin {
			return nil, claimdomain.ErrClaimLocked
		}
		return map[string]any{
			"locked_by": nil,
			"locked_at": nil,
		}, nil
	})
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*claimdomain.Claim, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, req claimdomain.ListRequest) (claimdomain.ListResponse, error) {
	var cursor *claimdomain.Cursor
	if strings.TrimSpace(req.PageToken) != "" {
		decoded, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return claimdomain.ListResponse{}, fmt.Errorf("%w: %v", claimdomain.ErrMissingField, err)
		}
		createdAt, err := time.Parse(time.RFC3339, decoded.CreatedAt)
		if err != nil {
			return claimdomain.ListResponse{}, fmt.Errorf("%w: page token", claimdomain.ErrMissingField)
		}
		id, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
		if err != nil || id == 0 {
			return claimdomain.ListResponse{}, fmt.Errorf("%w: page token", claimdomain.ErrMissingField)
		}
		cursor = &claimdomain.Cursor{ID: id, CreatedAt: createdAt}
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	if pageSize > 250 {
		pageSize = 250
	}

	items, err := s.repo.List(ctx, claimdomain.ListFilter{
		Status:     req.Status,
		AgencyCode: req.AgencyCode,
		From:       req.From,
		To:         req.To,
		Cursor:     cursor,
		Limit:      pageSize,
	})
	if err != nil {
		return claimdomain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int32(pageSize), func(item *claimdomain.Claim) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.ID.String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	claims := make([]claimdomain.Claim, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		claims = append(claims, *item)
	}

	resp := claimdomain.ListResponse{Claims: claims}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

// transition runs the load-guard-mint-update cycle with a bounded retry on
// duplicate generated numbers. Each attempt re-reads the claim so guards see
// fresh state.
func (s *Service) transition(ctx context.Context, actor actorctx.Actor, id snowflake.ID, action string, build func(*claimdomain.Claim, time.Time) (map[string]any, error)) (*claimdomain.Claim, error) {
	if !actor.Valid() {
		return nil, claimdomain.ErrInvalidActor
	}

	var lastErr error
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		claim, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		now := s.clock.Now()
		fields, err := build(claim, now)
		if err != nil {
			s.noteRejection(action, rejectionReason(err))
			return nil, err
		}
		if len(fields) == 0 {
			return claim, nil
		}

		affected, err := s.repo.UpdateTransition(ctx, nil, claim.ID, claim.Version, fields)
		if err != nil {
			if db.IsDuplicateKeyErr(err) && attempt < maxMintAttempts-1 {
				s.noteRetry(action)
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("%s claim: %w", action, err)
		}
		if affected == 0 {
			s.noteRejection(action, "version_conflict")
			return nil, claimdomain.ErrVersionConflict
		}

		updated, err := s.repo.FindByID(ctx, claim.ID)
		if err != nil {
			return nil, err
		}

		if newStatus, ok := fields["status"].(claimdomain.ClaimStatus); ok && newStatus != claim.Status {
			s.emit(ctx, claim.ID, actor, auditdomain.ActionStatusChanged,
				fmt.Sprintf("status berubah %s -> %s", claim.Status, newStatus),
				map[string]any{"from": string(claim.Status), "to": string(newStatus), "action": action})
			s.noteTransition(action, newStatus)
		} else {
			s.emit(ctx, claim.ID, actor, auditdomain.ActionUpdated, action, nil)
		}

		return updated, nil
	}

	return nil, fmt.Errorf("%s claim: %w", action, lastErr)
}

// emit writes the audit trail; failures are logged inside the audit service
// and never fail the transition.
func (s *Service) emit(ctx context.Context, claimID snowflake.ID, actor actorctx.Actor, action auditdomain.Action, detail string, metadata map[string]any) {
	_ = s.audit.Record(ctx, auditdomain.RecordInput{
		ClaimID:  claimID,
		Actor:    actor,
		Action:   action,
		Detail:   detail,
		Metadata: metadata,
	})
}

func (s *Service) notifySubmitter(ctx context.Context, claim *claimdomain.Claim, title, body string) {
	if err := s.notify.Notify(ctx, claim.SubmitterID, claim.ID, title, body); err != nil {
		s.log.Warn("failed to notify submitter",
			zap.String("claim_id", claim.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) noteTransition(action string, status claimdomain.ClaimStatus) {
	s.metrics.Transition(action, string(status))
}

func (s *Service) noteRejection(action, reason string) {
	s.metrics.Rejection(action, reason)
}

func (s *Service) noteRetry(action string) {
	s.log.Warn("duplicate generated number, retrying", zap.String("action", action))
	s.metrics.NumberRetry()
}

func requireRole(actor actorctx.Actor, role actorctx.Role) error {
	if !actor.Valid() {
		return claimdomain.ErrInvalidActor
	}
	if !actor.Is(role) {
		return fmt.Errorf("%w: need %s, have %s", claimdomain.ErrForbidden, role, actor.Role)
	}
	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, claimdomain.ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(err, claimdomain.ErrClaimLocked):
		return "claim_locked"
	case errors.Is(err, claimdomain.ErrVersionConflict):
		return "version_conflict"
	default:
		return "guard"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
