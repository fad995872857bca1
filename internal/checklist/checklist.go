// Package checklist evaluates the administrative document checklist reviewed
// during verification. The evaluator is pure; the decision guard in the claim
// service is its only consumer.
package checklist

import (
	"errors"
	"strings"
)

// Item is one reviewed checklist entry.
type Item struct {
	Label     string `json:"label"`
	Satisfied bool   `json:"memenuhi_syarat"`
	Note      string `json:"catatan,omitempty"`
}

var (
	ErrEmpty      = errors.New("checklist_empty")
	ErrBlankLabel = errors.New("checklist_blank_label")
)

// Canonical document labels seeding a fresh verification sheet. Reviewers may
// append custom items; these eight are always the default.
var defaultLabels = []string{
	"Surat Pengantar SPM",
	"Ringkasan Kontrak / SPK",
	"Surat Pernyataan Tanggung Jawab Mutlak (SPTJM)",
	"Surat Pertanggungjawaban (SPJ)",
	"Bukti tagihan / kuitansi",
	"Faktur pajak dan SSP",
	"Rekening koran pihak ketiga",
	"Dokumen pendukung lainnya",
}

// DefaultItems returns a fresh unsatisfied checklist with the canonical labels.
func DefaultItems() []Item {
	items := make([]Item, 0, len(defaultLabels))
	for _, label := range defaultLabels {
		items = append(items, Item{Label: label})
	}
	return items
}

// Validate rejects empty sheets and blank labels before a decision is taken.
func Validate(items []Item) error {
	if len(items) == 0 {
		return ErrEmpty
	}
	for _, item := range items {
		if strings.TrimSpace(item.Label) == "" {
			return ErrBlankLabel
		}
	}
	return nil
}

// AllSatisfied reports whether every item passed review.
func AllSatisfied(items []Item) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !item.Satisfied {
			return false
		}
	}
	return true
}

// Unsatisfied returns the items that failed review, preserving order.
func Unsatisfied(items []Item) []Item {
	var out []Item
	for _, item := range items {
		if !item.Satisfied {
			out = append(out, item)
		}
	}
	return out
}
