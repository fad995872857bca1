package domain

import "errors"

var (
	ErrNotFound      = errors.New("claim_not_found")
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrForbidden     = errors.New("role_not_permitted")
	ErrInvalidStatus = errors.New("invalid_claim_status")

	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrMissingField    = errors.New("missing_required_field")
	ErrInvalidReason   = errors.New("invalid_correction_reason")
	ErrSpmIncomplete   = errors.New("spm_number_incomplete")

	ErrChecklistIncomplete   = errors.New("checklist_item_unsatisfied")
	ErrChecklistAllSatisfied = errors.New("checklist_fully_satisfied")

	ErrClaimLocked     = errors.New("claim_locked")
	ErrVersionConflict = errors.New("version_conflict")
)
