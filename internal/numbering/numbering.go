// Package numbering mints and parses the document numbers of the claim
// workflow: SPM numbers, registration/verification/correction numbers and the
// monthly disbursement sequence.
package numbering

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Scheme discriminates the independent monthly counters.
type Scheme string

const (
	SchemeSubmission   Scheme = "submission"
	SchemeRegistration Scheme = "registration"
	SchemeVerification Scheme = "verification"
	SchemeCorrection   Scheme = "correction"
)

var (
	ErrGeneration    = errors.New("number_generation_failed")
	ErrUnparsable    = errors.New("number_unparsable")
	ErrIncompleteSpm = errors.New("spm_number_incomplete")
)

// SpmNumber is the structured claim document number. The wire format
// REGION/NNNNNN/TYPE/AGENCY/SCHEDULE/M/YYYY is frozen; already-issued numbers
// must keep round-tripping through Parse/String unchanged.
type SpmNumber struct {
	RegionCode   string
	Sequence     int64
	TypeCode     string
	AgencyCode   string
	ScheduleCode string
	Month        int
	Year         int
}

// BuildSpmNumber composes the SPM number from claim attributes. Every input
// must be present; callers must not persist a claim without a complete number.
func BuildSpmNumber(claimTypeLabel, scheduleCode, agencyCode, regionCode string, seq int64, at time.Time) (SpmNumber, error) {
	typeCode := TypeCodeFromLabel(claimTypeLabel)
	if strings.TrimSpace(regionCode) == "" ||
		strings.TrimSpace(scheduleCode) == "" ||
		strings.TrimSpace(agencyCode) == "" ||
		typeCode == "" ||
		seq <= 0 {
		return SpmNumber{}, ErrIncompleteSpm
	}

	return SpmNumber{
		RegionCode:   strings.TrimSpace(regionCode),
		Sequence:     seq,
		TypeCode:     typeCode,
		AgencyCode:   strings.TrimSpace(agencyCode),
		ScheduleCode: strings.TrimSpace(scheduleCode),
		Month:        int(at.Month()),
		Year:         at.Year(),
	}, nil
}

// String renders the frozen wire format. Month carries no leading zero.
func (n SpmNumber) String() string {
	return fmt.Sprintf("%s/%06d/%s/%s/%s/%d/%04d",
		n.RegionCode, n.Sequence, n.TypeCode, n.AgencyCode, n.ScheduleCode, n.Month, n.Year)
}

// ParseSpmNumber decomposes a wire-format SPM number.
func ParseSpmNumber(raw string) (SpmNumber, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 7 {
		return SpmNumber{}, fmt.Errorf("%w: %q", ErrUnparsable, raw)
	}

	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return SpmNumber{}, fmt.Errorf("%w: sequence %q", ErrUnparsable, parts[1])
	}
	month, err := strconv.Atoi(parts[5])
	if err != nil || month < 1 || month > 12 {
		return SpmNumber{}, fmt.Errorf("%w: month %q", ErrUnparsable, parts[5])
	}
	year, err := strconv.Atoi(parts[6])
	if err != nil {
		return SpmNumber{}, fmt.Errorf("%w: year %q", ErrUnparsable, parts[6])
	}

	return SpmNumber{
		RegionCode:   parts[0],
		Sequence:     seq,
		TypeCode:     parts[2],
		AgencyCode:   parts[3],
		ScheduleCode: parts[4],
		Month:        month,
		Year:         year,
	}, nil
}

// TypeCodeFromLabel extracts the parenthesized abbreviation of a claim type
// label ("Langsung (LS)" -> "LS"). Labels without parentheses are used
// verbatim.
func TypeCodeFromLabel(label string) string {
	label = strings.TrimSpace(label)
	open := strings.LastIndex(label, "(")
	close := strings.LastIndex(label, ")")
	if open >= 0 && close > open {
		return strings.TrimSpace(label[open+1 : close])
	}
	return label
}

// FormatRegistrationNumber renders REG-YYYYMMDD-NNNN.
func FormatRegistrationNumber(at time.Time, seq int64) string {
	return fmt.Sprintf("REG-%s-%04d", at.Format("20060102"), seq)
}

// FormatVerificationNumber renders VER-YYYYMMDD-NNNN.
func FormatVerificationNumber(at time.Time, seq int64) string {
	return fmt.Sprintf("VER-%s-%04d", at.Format("20060102"), seq)
}

// FormatCorrectionNumber derives {regSeq}-K-{NNNN} from the claim's
// registration number and the monthly correction counter. The registration
// sequence is re-parsed to an integer so leading zeros are stripped.
func FormatCorrectionNumber(registrationNumber string, seq int64) (string, error) {
	regSeq, err := TrailingSeq(registrationNumber)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-K-%04d", regSeq, seq), nil
}

// TrailingSeq parses the final numeric segment of a document number. Numbers
// are zero-padded on the wire, so numeric parsing is required; lexicographic
// comparison breaks at period rollover.
func TrailingSeq(number string) (int64, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return 0, fmt.Errorf("%w: empty number", ErrUnparsable)
	}

	cut := strings.LastIndexAny(number, "-/")
	segment := number
	if cut >= 0 {
		segment = number[cut+1:]
	}

	seq, err := strconv.ParseInt(strings.TrimSpace(segment), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, number)
	}
	return seq, nil
}

// MonthRange returns the half-open boundaries [start, end) of the calendar
// month containing t, in UTC.
func MonthRange(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
