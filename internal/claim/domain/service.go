package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/actorctx"
	"github.com/smartpemda/sitagih/internal/checklist"
	"github.com/smartpemda/sitagih/pkg/db/pagination"
)

// SubmitRequest creates a new claim in the registration queue.
type SubmitRequest struct {
	AgencyCode    string `json:"agency_code"`
	AgencyName    string `json:"agency_name"`
	ClaimType     string `json:"claim_type"`
	TagihanType   string `json:"tagihan_type"`
	FundingSource string `json:"funding_source"`
	Description   string `json:"description"`
	GrossAmount   int64  `json:"gross_amount"`
}

// VerifyRequest carries the reviewed checklist and the verifier's note.
type VerifyRequest struct {
	Note      string           `json:"note"`
	Checklist []checklist.Item `json:"checklist"`
}

// CorrectRequest returns a claim for budgetary reasons, bypassing the
// checklist.
type CorrectRequest struct {
	Reason CorrectionReason `json:"reason"`
}

// SP2DRequest records disbursement-order issuance.
type SP2DRequest struct {
	DisbursedAt    time.Time `json:"disbursed_at"`
	BankName       string    `json:"bank_name"`
	BankHandoverAt time.Time `json:"bank_handover_at"`
	Note           string    `json:"note"`
}

// ListRequest filters the claim queues.
type ListRequest struct {
	pagination.Pagination
	Status     ClaimStatus
	AgencyCode string
	From       *time.Time
	To         *time.Time
}

type ListResponse struct {
	pagination.PageInfo
	Claims []Claim `json:"claims"`
}

// Service is the claim lifecycle state machine. Every mutation takes the
// acting user explicitly; nothing is read from ambient session state.
type Service interface {
	Submit(ctx context.Context, actor actorctx.Actor, req SubmitRequest) (*Claim, error)
	Resubmit(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (*Claim, error)
	Register(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (*Claim, error)
	VerifyForward(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req VerifyRequest) (*Claim, error)
	VerifyReturn(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req VerifyRequest) (*Claim, error)
	Correct(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req CorrectRequest) (*Claim, error)
	RegisterSP2D(ctx context.Context, actor actorctx.Actor, id snowflake.ID, req SP2DRequest) (*Claim, error)
	Lock(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (*Claim, error)
	Unlock(ctx context.Context, actor actorctx.Actor, id snowflake.ID) (*Claim, error)
	Get(ctx context.Context, id snowflake.ID) (*Claim, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}
