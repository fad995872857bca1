package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TaxEntry is a withholding line attached to a disbursed claim. Entries carry
// no lifecycle of their own; the whole set is replaced on every save.
type TaxEntry struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ClaimID     snowflake.ID `gorm:"not null;index" json:"claim_id"`
	TaxType     string       `gorm:"type:text;not null" json:"tax_type"`
	AccountCode string       `gorm:"type:text" json:"account_code"`
	Amount      int64        `gorm:"not null" json:"amount"`
	NTPN        string       `gorm:"type:text" json:"ntpn"`
	NTB         string       `gorm:"type:text" json:"ntb"`
	BillingCode string       `gorm:"type:text" json:"billing_code"`
	EnteredBy   snowflake.ID `gorm:"not null" json:"entered_by"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
}

func (TaxEntry) TableName() string {
	return "tax_entries"
}

// TaxTypeOther marks a free-form type; its account code is entered manually.
const TaxTypeOther = "Lainnya"

var accountCodes = map[string]string{
	"PPh Ps 21":   "411121",
	"PPh Ps 22":   "411122",
	"PPh Ps 23":   "411124",
	"PPh Ps 4(2)": "411128",
	"PPN":         "411211",
}

// TaxTypes lists the selectable withholding types in display order.
func TaxTypes() []string {
	return []string{"PPh Ps 21", "PPh Ps 22", "PPh Ps 23", "PPh Ps 4(2)", "PPN", TaxTypeOther}
}

// AccountCodeFor derives the ledger account for a known tax type. Unknown
// types, including Lainnya, map to an empty code.
func AccountCodeFor(taxType string) string {
	return accountCodes[taxType]
}
