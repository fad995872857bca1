package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smartpemda/sitagih/internal/actorctx"
)

var (
	ErrNoEntries      = errors.New("tax entry set is empty")
	ErrEmptyType      = errors.New("tax entry has no type")
	ErrInvalidAmount  = errors.New("tax entry amount must be positive")
	ErrNotDisbursed   = errors.New("claim is not yet disbursed")
)

// EntryInput is one withholding line as submitted. AccountCode is optional;
// when blank it is derived from the tax type where a mapping exists.
type EntryInput struct {
	TaxType     string `json:"tax_type"`
	AccountCode string `json:"account_code"`
	Amount      int64  `json:"amount"`
	NTPN        string `json:"ntpn"`
	NTB         string `json:"ntb"`
	BillingCode string `json:"billing_code"`
}

// Service replaces and reads the withholding set of a claim.
type Service interface {
	// Replace validates the whole batch, swaps the persisted set for it and
	// marks the claim's aggregate tax flag complete, atomically.
	Replace(ctx context.Context, actor actorctx.Actor, claimID snowflake.ID, entries []EntryInput) ([]TaxEntry, error)
	List(ctx context.Context, claimID snowflake.ID) ([]TaxEntry, error)
}
