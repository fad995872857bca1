package numbering

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSpmNumberRoundTrip(t *testing.T) {
	at := time.Date(2026, time.March, 9, 10, 30, 0, 0, time.UTC)

	spm, err := BuildSpmNumber("Langsung (LS)", "A", "1.01.01", "091", 42, at)
	require.NoError(t, err)

	raw := spm.String()
	assert.Equal(t, "091/000042/LS/1.01.01/A/3/2026", raw)

	parts := strings.Split(raw, "/")
	require.Len(t, parts, 7)
	seq, err := strconv.ParseInt(parts[1], 10, 64)
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)
	assert.Equal(t, "LS", parts[2])
	assert.Equal(t, "1.01.01", parts[3])
	assert.Equal(t, "A", parts[4])

	parsed, err := ParseSpmNumber(raw)
	require.NoError(t, err)
	assert.Equal(t, spm, parsed)
}

func TestBuildSpmNumberRejectsIncompleteInputs(t *testing.T) {
	at := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		label    string
		schedule string
		agency   string
		region   string
		seq      int64
	}{
		{"missing region", "Langsung (LS)", "A", "1.01.01", "", 1},
		{"missing schedule", "Langsung (LS)", "", "1.01.01", "091", 1},
		{"missing agency", "Langsung (LS)", "A", "", "091", 1},
		{"missing type", "", "A", "1.01.01", "091", 1},
		{"zero sequence", "Langsung (LS)", "A", "1.01.01", "091", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSpmNumber(tc.label, tc.schedule, tc.agency, tc.region, tc.seq, at)
			assert.ErrorIs(t, err, ErrIncompleteSpm)
		})
	}
}

func TestParseSpmNumberRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "091/000001/LS", "091/xx/LS/1.01/A/3/2026", "091/000001/LS/1.01/A/13/2026"} {
		_, err := ParseSpmNumber(raw)
		assert.ErrorIs(t, err, ErrUnparsable, raw)
	}
}

func TestTypeCodeFromLabel(t *testing.T) {
	assert.Equal(t, "LS", TypeCodeFromLabel("Langsung (LS)"))
	assert.Equal(t, "GU", TypeCodeFromLabel("Ganti Uang Persediaan (GU)"))
	assert.Equal(t, "UP", TypeCodeFromLabel("  UP  "))
	assert.Equal(t, "", TypeCodeFromLabel("   "))
}

func TestFormatCorrectionNumberStripsLeadingZeros(t *testing.T) {
	got, err := FormatCorrectionNumber("REG-20260301-0010", 1)
	require.NoError(t, err)
	assert.Equal(t, "10-K-0001", got)

	got, err = FormatCorrectionNumber("REG-20260301-0005", 1)
	require.NoError(t, err)
	assert.Equal(t, "5-K-0001", got)
}

func TestFormatCorrectionNumberRejectsUnparsableRegistration(t *testing.T) {
	_, err := FormatCorrectionNumber("REG-20260301-xx", 1)
	assert.ErrorIs(t, err, ErrUnparsable)
}

func TestTrailingSeq(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"VER-20260301-0009", 9},
		{"REG-20260301-0010", 10},
		{"10-K-0003", 3},
		{"091/000042/LS/1.01.01/A/3/2026", 2026},
	}
	for _, tc := range tests {
		got, err := TrailingSeq(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	_, err := TrailingSeq("")
	assert.ErrorIs(t, err, ErrUnparsable)
	_, err = TrailingSeq("REG-20260301-")
	assert.ErrorIs(t, err, ErrUnparsable)
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}
