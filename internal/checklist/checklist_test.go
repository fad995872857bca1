package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultItemsSeedsCanonicalSheet(t *testing.T) {
	items := DefaultItems()
	require.Len(t, items, 8)
	assert.Equal(t, "Surat Pengantar SPM", items[0].Label)
	assert.Equal(t, "Dokumen pendukung lainnya", items[7].Label)
	for _, item := range items {
		assert.False(t, item.Satisfied)
		assert.Empty(t, item.Note)
	}
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrEmpty)
	assert.ErrorIs(t, Validate([]Item{}), ErrEmpty)
	assert.ErrorIs(t, Validate([]Item{{Label: "  "}}), ErrBlankLabel)
	assert.NoError(t, Validate([]Item{{Label: "Surat Pengantar SPM"}}))
}

// Exactly one of forward/return is allowed for any reviewed sheet: forward
// iff every item is satisfied, return otherwise.
func TestAllSatisfiedIsExclusive(t *testing.T) {
	satisfied := DefaultItems()
	for i := range satisfied {
		satisfied[i].Satisfied = true
	}
	assert.True(t, AllSatisfied(satisfied))
	assert.Empty(t, Unsatisfied(satisfied))

	oneMissing := DefaultItems()
	for i := range oneMissing {
		oneMissing[i].Satisfied = true
	}
	oneMissing[3].Satisfied = false
	oneMissing[3].Note = "dokumen tidak lengkap"
	assert.False(t, AllSatisfied(oneMissing))
	require.Len(t, Unsatisfied(oneMissing), 1)
	assert.Equal(t, oneMissing[3].Label, Unsatisfied(oneMissing)[0].Label)
}

func TestAllSatisfiedEmptySheetIsNeverForwardable(t *testing.T) {
	assert.False(t, AllSatisfied(nil))
	assert.False(t, AllSatisfied([]Item{}))
}
