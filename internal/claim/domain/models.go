// Package domain contains the claim ("tagihan") lifecycle model and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ClaimStatus represents claim lifecycle states.
type ClaimStatus string

const (
	StatusMenungguRegistrasi ClaimStatus = "MENUNGGU_REGISTRASI"
	StatusMenungguVerifikasi ClaimStatus = "MENUNGGU_VERIFIKASI"
	StatusDiteruskan         ClaimStatus = "DITERUSKAN"
	StatusDikembalikan       ClaimStatus = "DIKEMBALIKAN"
	StatusSelesai            ClaimStatus = "SELESAI"
)

// TaxStatus is the aggregate tax-entry flag on a claim.
type TaxStatus string

const (
	TaxStatusBelum   TaxStatus = "BELUM"
	TaxStatusSelesai TaxStatus = "SELESAI"
)

// CorrectionReason is the fixed set of budgetary return reasons. The
// correction path exists for cash-availability constraints, not documentation
// defects; those go through the verification checklist.
type CorrectionReason string

const (
	ReasonKasTidakCukup     CorrectionReason = "Kas sumber dana tidak cukup tersedia"
	ReasonMelampauiAnggaran CorrectionReason = "Melampaui anggaran kas yang tersedia"
)

// ValidCorrectionReason reports membership in the fixed reason set.
func ValidCorrectionReason(r CorrectionReason) bool {
	return r == ReasonKasTidakCukup || r == ReasonMelampauiAnggaran
}

// Claim is the central workflow entity.
type Claim struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	AgencyCode    string  `gorm:"type:text;not null;index" json:"agency_code"`
	AgencyName    string  `gorm:"type:text;not null" json:"agency_name"`
	SpmNumber     *string `gorm:"type:text;uniqueIndex:ux_claims_spm_number" json:"spm_number"`
	ClaimType     string  `gorm:"type:text;not null" json:"claim_type"`
	TagihanType   string  `gorm:"type:text;not null" json:"tagihan_type"`
	FundingSource string  `gorm:"type:text;not null" json:"funding_source"`
	Description   string  `gorm:"type:text" json:"description"`
	GrossAmount   int64   `gorm:"not null;default:0" json:"gross_amount"`

	Status    ClaimStatus `gorm:"type:text;not null;index" json:"status"`
	TaxStatus TaxStatus   `gorm:"type:text;not null;default:'BELUM'" json:"tax_status"`

	SubmittedAt   time.Time    `gorm:"not null" json:"submitted_at"`
	SubmitterID   snowflake.ID `gorm:"not null;index" json:"submitter_id"`
	SubmitterName string       `gorm:"type:text;not null" json:"submitter_name"`

	RegistrationNumber *string    `gorm:"type:text;uniqueIndex:ux_claims_registration_number" json:"registration_number"`
	RegisteredAt       *time.Time `gorm:"index" json:"registered_at"`
	RegistrarName      *string    `gorm:"type:text" json:"registrar_name"`

	// Verification and correction numbers are unique per minting month, not
	// globally: the correction format carries no period component and is
	// back-filled into verification_number. The SQL migrations hold the
	// month-scoped unique indexes; AutoMigrate setups get a plain index.
	VerificationNumber *string        `gorm:"type:text;index:ix_claims_verification_number" json:"verification_number"`
	VerifiedAt         *time.Time     `gorm:"index" json:"verified_at"`
	VerifierName       *string        `gorm:"type:text" json:"verifier_name"`
	VerificationNote   *string        `gorm:"type:text" json:"verification_note"`
	Checklist          datatypes.JSON `gorm:"type:jsonb" json:"checklist"`

	CorrectionNumber *string           `gorm:"type:text;index:ix_claims_correction_number" json:"correction_number"`
	CorrectionReason *CorrectionReason `gorm:"type:text" json:"correction_reason"`
	CorrectorID      *snowflake.ID     `gorm:"" json:"corrector_id"`
	CorrectedAt      *time.Time        `gorm:"index" json:"corrected_at"`

	DisbursedAt      *time.Time `gorm:"" json:"disbursed_at"`
	BankName         *string    `gorm:"type:text" json:"bank_name"`
	BankHandoverAt   *time.Time `gorm:"" json:"bank_handover_at"`
	DisbursementNote *string    `gorm:"type:text" json:"disbursement_note"`
	DisbursementSeq  *int64     `gorm:"index" json:"disbursement_seq"`
	Sp2dRegisteredAt *time.Time `gorm:"index" json:"sp2d_registered_at"`

	// Optimistic concurrency token; every transition increments it.
	Version int64 `gorm:"not null;default:1" json:"version"`

	// Advisory review lock, cleared by whatever transition runs next.
	LockedBy *snowflake.ID `gorm:"" json:"locked_by"`
	LockedAt *time.Time    `gorm:"" json:"locked_at"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Claim) TableName() string { return "claims" }

// TaxReady is the single definition of the derived "eligible for tax entry"
// state: disbursement finished, tax not yet complete.
func (c *Claim) TaxReady() bool {
	return c.Status == StatusSelesai && c.TaxStatus != TaxStatusSelesai
}

// LockedByOther reports whether someone other than userID holds the review
// lock.
func (c *Claim) LockedByOther(userID snowflake.ID) bool {
	return c.LockedBy != nil && *c.LockedBy != userID
}
