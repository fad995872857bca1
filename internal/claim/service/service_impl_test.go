package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smartpemda/sitagih/internal/actorctx"
	auditdomain "github.com/smartpemda/sitagih/internal/audit/domain"
	"github.com/smartpemda/sitagih/internal/checklist"
	claimdomain "github.com/smartpemda/sitagih/internal/claim/domain"
	claimrepository "github.com/smartpemda/sitagih/internal/claim/repository"
	"github.com/smartpemda/sitagih/internal/clock"
	"github.com/smartpemda/sitagih/internal/config"
	notificationdomain "github.com/smartpemda/sitagih/internal/notification/domain"
	"github.com/smartpemda/sitagih/internal/numbering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// -- Stubs --

type auditRecorder struct {
	records []auditdomain.RecordInput
}

func (a *auditRecorder) Record(_ context.Context, in auditdomain.RecordInput) error {
	a.records = append(a.records, in)
	return nil
}

func (a *auditRecorder) List(context.Context, auditdomain.ListRequest) (auditdomain.ListResponse, error) {
	return auditdomain.ListResponse{}, nil
}

type notifyRecorder struct {
	notified []snowflake.ID
	titles   []string
}

func (n *notifyRecorder) Notify(_ context.Context, userID, _ snowflake.ID, title, _ string) error {
	n.notified = append(n.notified, userID)
	n.titles = append(n.titles, title)
	return nil
}

func (n *notifyRecorder) ListByUser(context.Context, snowflake.ID, int) ([]notificationdomain.Notification, error) {
	return nil, nil
}

func (n *notifyRecorder) MarkRead(context.Context, snowflake.ID, snowflake.ID) error {
	return nil
}

// -- Harness --

type harness struct {
	svc    claimdomain.Service
	repo   claimdomain.Repository
	db     *gorm.DB
	clock  *clock.FakeClock
	node   *snowflake.Node
	audit  *auditRecorder
	notify *notifyRecorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&claimdomain.Claim{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC))
	repo := claimrepository.NewRepository(db)
	audit := &auditRecorder{}
	notify := &notifyRecorder{}

	svc := NewService(Params{
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fake,
		Cfg:       config.Config{RegionCode: "091", ScheduleCode: "A"},
		Repo:      repo,
		Gen:       numbering.NewGenerator(repo, zap.NewNop()),
		AuditSvc:  audit,
		NotifySvc: notify,
	})

	return &harness{
		svc:    svc,
		repo:   repo,
		db:     db,
		clock:  fake,
		node:   node,
		audit:  audit,
		notify: notify,
	}
}

var (
	submitter = actorctx.Actor{Role: actorctx.RoleSKPD, DisplayName: "Budi Santoso"}
	registrar = actorctx.Actor{Role: actorctx.RoleRegistrasi, DisplayName: "Sri Wahyuni"}
	verifier  = actorctx.Actor{Role: actorctx.RoleVerifikasi, DisplayName: "Agus Salim"}
	corrector = actorctx.Actor{Role: actorctx.RoleKoreksi, DisplayName: "Dewi Lestari"}
	sp2dStaff = actorctx.Actor{Role: actorctx.RoleSP2D, DisplayName: "Rudi Hartono"}
)

func (h *harness) actor(base actorctx.Actor) actorctx.Actor {
	base.ID = h.node.Generate()
	return base
}

func (h *harness) submit(t *testing.T, actor actorctx.Actor) *claimdomain.Claim {
	t.Helper()
	claim, err := h.svc.Submit(context.Background(), actor, claimdomain.SubmitRequest{
		AgencyCode:    "1.01.01",
		AgencyName:    "Dinas Pendidikan",
		ClaimType:     "Langsung (LS)",
		TagihanType:   "Belanja Barang",
		FundingSource: "APBD",
		GrossAmount:   5_000_000,
	})
	require.NoError(t, err)
	return claim
}

func satisfiedChecklist() []checklist.Item {
	items := checklist.DefaultItems()
	for i := range items {
		items[i].Satisfied = true
	}
	return items
}

// -- Tests --

func TestHappyPathToDisbursement(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	skpd := h.actor(submitter)

	claim := h.submit(t, skpd)
	assert.Equal(t, claimdomain.StatusMenungguRegistrasi, claim.Status)
	require.NotNil(t, claim.SpmNumber)
	assert.Equal(t, "091/000001/LS/1.01.01/A/3/2026", *claim.SpmNumber)
	assert.Equal(t, int64(1), claim.Version)

	claim, err := h.svc.Register(ctx, h.actor(registrar), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, claimdomain.StatusMenungguVerifikasi, claim.Status)
	require.NotNil(t, claim.RegistrationNumber)
	assert.Equal(t, "REG-20260309-0001", *claim.RegistrationNumber)
	assert.Equal(t, int64(2), claim.Version)

	claim, err = h.svc.VerifyForward(ctx, h.actor(verifier), claim.ID, claimdomain.VerifyRequest{
		Note:      "lengkap",
		Checklist: satisfiedChecklist(),
	})
	require.NoError(t, err)
	assert.Equal(t, claimdomain.StatusDiteruskan, claim.Status)
	require.NotNil(t, claim.VerificationNumber)
	assert.Equal(t, "VER-20260309-0001", *claim.VerificationNumber)

	claim, err = h.svc.RegisterSP2D(ctx, h.actor(sp2dStaff), claim.ID, claimdomain.SP2DRequest{
		DisbursedAt:    h.clock.Now(),
		BankName:       "Bank Jateng",
		BankHandoverAt: h.clock.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, claimdomain.StatusSelesai, claim.Status)
	require.NotNil(t, claim.DisbursementSeq)
	assert.Equal(t, int64(1), *claim.DisbursementSeq)
	assert.True(t, claim.TaxReady())

	// Every status change left an audit record.
	var statusChanges int
	for _, rec := range h.audit.records {
		if rec.Action == auditdomain.ActionStatusChanged {
			statusChanges++
		}
	}
	assert.Equal(t, 3, statusChanges)
}

func TestMonthlySequencesAreIndependentAndReset(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first := h.submit(t, h.actor(submitter))
	second := h.submit(t, h.actor(submitter))
	assert.Equal(t, "091/000002/LS/1.01.01/A/3/2026", *second.SpmNumber)

	reg := h.actor(registrar)
	firstReg, err := h.svc.Register(ctx, reg, first.ID)
	require.NoError(t, err)
	secondReg, err := h.svc.Register(ctx, reg, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "REG-20260309-0001", *firstReg.RegistrationNumber)
	assert.Equal(t, "REG-20260309-0002", *secondReg.RegistrationNumber)

	// A new month starts a fresh counter.
	h.clock.Advance(31 * 24 * time.Hour)
	third := h.submit(t, h.actor(submitter))
	assert.Equal(t, "091/000001/LS/1.01.01/A/4/2026", *third.SpmNumber)
}

func TestVerifyReturnRequiresUnsatisfiedItem(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	skpd := h.actor(submitter)

	claim := h.submit(t, skpd)
	claim, err := h.svc.Register(ctx, h.actor(registrar), claim.ID)
	require.NoError(t, err)

	items := satisfiedChecklist()
	items[3].Satisfied = false
	items[3].Note = "dokumen tidak lengkap"

	// Forward with an unsatisfied item is rejected.
	_, err = h.svc.VerifyForward(ctx, h.actor(verifier), claim.ID, claimdomain.VerifyRequest{Checklist: items})
	assert.ErrorIs(t, err, claimdomain.ErrChecklistIncomplete)

	// Return with a fully satisfied sheet is rejected.
	_, err = h.svc.VerifyReturn(ctx, h.actor(verifier), claim.ID, claimdomain.VerifyRequest{Checklist: satisfiedChecklist()})
	assert.ErrorIs(t, err, claimdomain.ErrChecklistAllSatisfied)

	returned, err := h.svc.VerifyReturn(ctx, h.actor(verifier), claim.ID, claimdomain.VerifyRequest{
		Note:      "dokumen tidak lengkap",
		Checklist: items,
	})
	require.NoError(t, err)
	assert.Equal(t, claimdomain.StatusDikembalikan, returned.Status)

	// The submitter was told.
	require.Len(t, h.notify.notified, 1)
	assert.Equal(t, skpd.ID, h.notify.notified[0])
}

func TestCorrectionBackfillsVerificationFields(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	skpd := h.actor(submitter)

	claim := h.submit(t, skpd)
	claim, err := h.svc.Register(ctx, h.actor(registrar), claim.ID)
	require.NoError(t, err)

	// Registration sequence 0005 for the derivation check.
	require.NoError(t, h.db.Model(&claimdomain.Claim{}).
		Where("id = ?", claim.ID).
		Update("registration_number", "REG-20260309-0005").Error)

	kor := h.actor(corrector)
	corrected, err := h.svc.Correct(ctx, kor, claim.ID, claimdomain.CorrectRequest{
		Reason: claimdomain.ReasonKasTidakCukup,
	})
	require.NoError(t, err)

	assert.Equal(t, claimdomain.StatusDikembalikan, corrected.Status)
	require.NotNil(t, corrected.CorrectionNumber)
	assert.Equal(t, "5-K-0001", *corrected.CorrectionNumber)
	require.NotNil(t, corrected.VerificationNumber)
	assert.Equal(t, "5-K-0001", *corrected.VerificationNumber)
	require.NotNil(t, corrected.VerifierName)
	assert.Equal(t, kor.DisplayName, *corrected.VerifierName)
	require.NotNil(t, corrected.CorrectionReason)
	assert.Equal(t, claimdomain.ReasonKasTidakCukup, *corrected.CorrectionReason)

	require.Len(t, h.notify.notified, 1)
	assert.Equal(t, skpd.ID, h.notify.notified[0])

	var corrections int
	for _, rec := range h.audit.records {
		if rec.Action == auditdomain.ActionCorrected {
			corrections++
		}
	}
	assert.Equal(t, 1, corrections)
}

func TestCorrectRejectsUnknownReason(t *testing.T) {
	h := newHarness(t)
	claim := h.submit(t, h.actor(submitter))
	claim, err := h.svc.Register(context.Background(), h.actor(registrar), claim.ID)
	require.NoError(t, err)

	_, err = h.svc.Correct(context.Background(), h.actor(corrector), claim.ID, claimdomain.CorrectRequest{
		Reason: "Alasan bebas",
	})
	assert.ErrorIs(t, err, claimdomain.ErrInvalidReason)
}

func TestCorrectionNumbersStayOutOfVerificationCounter(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first := h.submit(t, h.actor(submitter))
	first, err := h.svc.Register(ctx, h.actor(registrar), first.ID)
	require.NoError(t, err)
	_, err = h.svc.Correct(ctx, h.actor(corrector), first.ID, claimdomain.CorrectRequest{
		Reason: claimdomain.ReasonMelampauiAnggaran,
	})
	require.NoError(t, err)

	// The back-filled verification_number ("1-K-0001") must not advance the
	// VER counter of the month.
	second := h.submit(t, h.actor(submitter))
	second, err = h.svc.Register(ctx, h.actor(registrar), second.ID)
	require.NoError(t, err)
	verified, err := h.svc.VerifyForward(ctx, h.actor(verifier), second.ID, claimdomain.VerifyRequest{
		Checklist: satisfiedChecklist(),
	})
	require.NoError(t, err)
	assert.Equal(t, "VER-20260309-0001", *verified.VerificationNumber)
}

func TestResubmitOnlyBySubmitter(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	skpd := h.actor(submitter)

	claim := h.submit(t, skpd)
	claim, err := h.svc.Register(ctx, h.actor(registrar), claim.ID)
	require.NoError(t, err)

	items := satisfiedChecklist()
	items[0].Satisfied = false
	claim, err = h.svc.VerifyReturn(ctx, h.actor(verifier), claim.ID, claimdomain.VerifyRequest{Checklist: items})
	require.NoError(t, err)

	otherSKPD := h.actor(submitter)
	_, err = h.svc.Resubmit(ctx, otherSKPD, claim.ID)
	assert.ErrorIs(t, err, claimdomain.ErrForbidden)

	resubmitted, err := h.svc.Resubmit(ctx, skpd, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, claimdomain.StatusMenungguRegistrasi, resubmitted.Status)
	// The previous cycle's numbers survive on the record.
	assert.NotNil(t, resubmitted.RegistrationNumber)
}

func TestRoleGuards(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.Submit(ctx, h.actor(verifier), claimdomain.SubmitRequest{})
	assert.ErrorIs(t, err, claimdomain.ErrForbidden)

	claim := h.submit(t, h.actor(submitter))
	_, err = h.svc.Register(ctx, h.actor(submitter), claim.ID)
	assert.ErrorIs(t, err, claimdomain.ErrForbidden)

	_, err = h.svc.Register(ctx, actorctx.Actor{}, claim.ID)
	assert.ErrorIs(t, err, claimdomain.ErrInvalidActor)

	// Admin passes every role gate.
	admin := h.actor(actorctx.Actor{Role: actorctx.RoleAdmin, DisplayName: "Admin"})
	registered, err := h.svc.Register(ctx, admin, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, claimdomain.StatusMenungguVerifikasi, registered.Status)
}

func TestTransitionsRejectWrongStatus(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	claim := h.submit(t, h.actor(submitter))

	// Verification before registration.
	_, err := h.svc.VerifyForward(ctx, h.actor(verifier), claim.ID, claimdomain.VerifyRequest{
		Checklist: satisfiedChecklist(),
	})
	assert.ErrorIs(t, err, claimdomain.ErrInvalidStatus)

	claim, err = h.svc.Register(ctx, h.actor(registrar), claim.ID)
	require.NoError(t, err)

	// Double registration.
	_, err = h.svc.Register(ctx, h.actor(registrar), claim.ID)
	assert.ErrorIs(t, err, claimdomain.ErrInvalidStatus)

	// SP2D before forwarding.
	_, err = h.svc.RegisterSP2D(ctx, h.actor(sp2dStaff), claim.ID, claimdomain.SP2DRequest{
		DisbursedAt:    h.clock.Now(),
		BankName:       "Bank Jateng",
		BankHandoverAt: h.clock.Now(),
	})
	assert.ErrorIs(t, err, claimdomain.ErrInvalidStatus)
}

func TestSubmitValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	skpd := h.actor(submitter)

	_, err := h.svc.Submit(ctx, skpd, claimdomain.SubmitRequest{
		AgencyCode:  "1.01.01",
		AgencyName:  "Dinas Pendidikan",
		ClaimType:   "Langsung (LS)",
		TagihanType: "Belanja Barang",
		// FundingSource missing
	})
	assert.ErrorIs(t, err, claimdomain.ErrMissingField)

	_, err = h.svc.Submit(ctx, skpd, claimdomain.SubmitRequest{
		AgencyCode:    "1.01.01",
		AgencyName:    "Dinas Pendidikan",
		ClaimType:     "Langsung (LS)",
		TagihanType:   "Belanja Barang",
		FundingSource: "APBD",
		GrossAmount:   -1,
	})
	assert.ErrorIs(t, err, claimdomain.ErrInvalidAmount)
}

func TestReviewLockBlocksOtherReviewers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	claim := h.submit(t, h.actor(submitter))
	claim, err := h.svc.Register(ctx, h.actor(registrar), claim.ID)
	require.NoError(t, err)

	holder := h.actor(verifier)
	locked, err := h.svc.Lock(ctx, holder, claim.ID)
	require.NoError(t, err)
	require.NotNil(t, locked.LockedBy)
	assert.Equal(t, holder.ID, *locked.LockedBy)

	// Another verifier can neither decide nor steal the lock.
	other := h.actor(verifier)
	_, err = h.svc.VerifyForward(ctx, other, claim.ID, claimdomain.VerifyRequest{
		Checklist: satisfiedChecklist(),
	})
	assert.ErrorIs(t, err, claimdomain.ErrClaimLocked)
	_, err = h.svc.Lock(ctx, other, claim.ID)
	assert.ErrorIs(t, err, claimdomain.ErrClaimLocked)
	_, err = h.svc.Unlock(ctx, other, claim.ID)
	assert.ErrorIs(t, err, claimdomain.ErrClaimLocked)

	// The holder's own decision completes and clears the lock.
	forwarded, err := h.svc.VerifyForward(ctx, holder, claim.ID, claimdomain.VerifyRequest{
		Checklist: satisfiedChecklist(),
	})
	require.NoError(t, err)
	assert.Nil(t, forwarded.LockedBy)
	assert.Nil(t, forwarded.LockedAt)
}

func TestUnlockByHolderAndAdmin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	claim := h.submit(t, h.actor(submitter))
	claim, err := h.svc.Register(ctx, h.actor(registrar), claim.ID)
	require.NoError(t, err)

	holder := h.actor(verifier)
	_, err = h.svc.Lock(ctx, holder, claim.ID)
	require.NoError(t, err)

	unlocked, err := h.svc.Unlock(ctx, holder, claim.ID)
	require.NoError(t, err)
	assert.Nil(t, unlocked.LockedBy)

	// Admin may break someone else's lock.
	_, err = h.svc.Lock(ctx, holder, claim.ID)
	require.NoError(t, err)
	admin := h.actor(actorctx.Actor{Role: actorctx.RoleAdmin, DisplayName: "Admin"})
	unlocked, err = h.svc.Unlock(ctx, admin, claim.ID)
	require.NoError(t, err)
	assert.Nil(t, unlocked.LockedBy)
}

func TestListFiltersAndPaginates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		claim := h.submit(t, h.actor(submitter))
		if i == 0 {
			_, err := h.svc.Register(ctx, h.actor(registrar), claim.ID)
			require.NoError(t, err)
		}
		h.clock.Advance(time.Minute)
	}

	resp, err := h.svc.List(ctx, claimdomain.ListRequest{
		Status: claimdomain.StatusMenungguRegistrasi,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Claims, 2)

	paged, err := h.svc.List(ctx, claimdomain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, paged.Claims, 3)
	assert.False(t, paged.HasMore)
}

func TestGetUnknownClaim(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Get(context.Background(), h.node.Generate())
	assert.ErrorIs(t, err, claimdomain.ErrNotFound)
}

// contendedRepo wraps the real repository to simulate rival writers: a version
// bump landing between read and update, or a number scan reading stale history
// so the derived number is already taken.
type contendedRepo struct {
	claimdomain.Repository
	db *gorm.DB

	bumpNextFind bool
	staleScans   int
	scans        int
}

func (r *contendedRepo) FindByID(ctx context.Context, id snowflake.ID) (*claimdomain.Claim, error) {
	claim, err := r.Repository.FindByID(ctx, id)
	if err != nil || !r.bumpNextFind {
		return claim, err
	}
	r.bumpNextFind = false
	err = r.db.Model(&claimdomain.Claim{}).
		Where("id = ?", id).
		Update("version", gorm.Expr("version + 1")).Error
	return claim, err
}

func (r *contendedRepo) Numbers(ctx context.Context, scheme numbering.Scheme, from, to time.Time) ([]string, error) {
	r.scans++
	if r.staleScans > 0 {
		r.staleScans--
		return nil, nil
	}
	return r.Repository.Numbers(ctx, scheme, from, to)
}

// rewire rebuilds the service over a wrapped repository.
func (h *harness) rewire(repo claimdomain.Repository) claimdomain.Service {
	return NewService(Params{
		Log:       zap.NewNop(),
		GenID:     h.node,
		Clock:     h.clock,
		Cfg:       config.Config{RegionCode: "091", ScheduleCode: "A"},
		Repo:      repo,
		Gen:       numbering.NewGenerator(repo, zap.NewNop()),
		AuditSvc:  h.audit,
		NotifySvc: h.notify,
	})
}

func TestRegisterReturnsVersionConflictWhenRivalWriteLands(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	claim := h.submit(t, h.actor(submitter))

	contended := &contendedRepo{Repository: h.repo, db: h.db, bumpNextFind: true}
	svc := h.rewire(contended)

	_, err := svc.Register(ctx, h.actor(registrar), claim.ID)
	require.ErrorIs(t, err, claimdomain.ErrVersionConflict)

	// The rival's bump is the only write that landed.
	stored, err := h.repo.FindByID(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, claimdomain.StatusMenungguRegistrasi, stored.Status)
	assert.Nil(t, stored.RegistrationNumber)
}

func TestRegisterRemintsWhenDerivedNumberIsTaken(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first := h.submit(t, h.actor(submitter))
	first, err := h.svc.Register(ctx, h.actor(registrar), first.ID)
	require.NoError(t, err)
	require.NotNil(t, first.RegistrationNumber)
	require.Equal(t, "REG-20260309-0001", *first.RegistrationNumber)

	second := h.submit(t, h.actor(submitter))

	// The first scan misses the registration above, so the mint collides with
	// the unique index and the transition must re-derive.
	contended := &contendedRepo{Repository: h.repo, db: h.db, staleScans: 1}
	svc := h.rewire(contended)

	registered, err := svc.Register(ctx, h.actor(registrar), second.ID)
	require.NoError(t, err)
	require.NotNil(t, registered.RegistrationNumber)
	assert.Equal(t, "REG-20260309-0002", *registered.RegistrationNumber)
	assert.Equal(t, 2, contended.scans)
}

func TestCorrectionNumbersMayRepeatAcrossMonths(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first := h.submit(t, h.actor(submitter))
	first, err := h.svc.Register(ctx, h.actor(registrar), first.ID)
	require.NoError(t, err)
	firstCorrected, err := h.svc.Correct(ctx, h.actor(corrector), first.ID, claimdomain.CorrectRequest{
		Reason: claimdomain.ReasonKasTidakCukup,
	})
	require.NoError(t, err)
	require.NotNil(t, firstCorrected.CorrectionNumber)
	require.Equal(t, "1-K-0001", *firstCorrected.CorrectionNumber)

	// Next month both counters reset, so the same string is derived again.
	// Number uniqueness is scoped to the minting month.
	h.clock.Advance(31 * 24 * time.Hour)

	second := h.submit(t, h.actor(submitter))
	second, err = h.svc.Register(ctx, h.actor(registrar), second.ID)
	require.NoError(t, err)
	secondCorrected, err := h.svc.Correct(ctx, h.actor(corrector), second.ID, claimdomain.CorrectRequest{
		Reason: claimdomain.ReasonKasTidakCukup,
	})
	require.NoError(t, err)
	require.NotNil(t, secondCorrected.CorrectionNumber)
	assert.Equal(t, *firstCorrected.CorrectionNumber, *secondCorrected.CorrectionNumber)
	require.NotNil(t, secondCorrected.VerificationNumber)
	assert.Equal(t, *firstCorrected.VerificationNumber, *secondCorrected.VerificationNumber)
}
