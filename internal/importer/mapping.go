package importer

import (
	"regexp"
	"strings"

	"inventory/internal/schema"
)

// ── Column mapping ──────────────────────────────────────────
// Pure, deterministic mapping from source column names to target
// field names. No hidden state, so it is unit-testable apart from
// file I/O.

// Mapping reasons.
const (
	MatchExact      = "exact"
	MatchNormalized = "normalized"
	MatchNone       = "unmapped"
)

// ColumnMapping records how one source column was matched.
type ColumnMapping struct {
	Source string `json:"source"`
	Target string `json:"target"` // field name, or "" when unmapped
	Reason string `json:"reason"` // "exact" | "normalized" | "unmapped"
}

var punctRe = regexp.MustCompile(`[^a-z0-9]`)

// normalizeName lowers a name and strips punctuation and underscores,
// so "Unit Price", "unit_price" and "UNIT-PRICE" all compare equal.
func normalizeName(s string) string {
	return punctRe.ReplaceAllString(strings.ToLower(s), "")
}

// MapColumns proposes a target field for every source column:
// case-insensitive exact match first, then normalized match. Columns
// are considered left to right and each field is claimed at most once,
// so when two columns match one field equally well the leftmost wins.
func MapColumns(columns []string, fields []schema.FieldDefinition) []ColumnMapping {
	claimed := make(map[string]bool, len(fields))
	mappings := make([]ColumnMapping, len(columns))

	// Pass 1: exact (case-insensitive) matches.
	for i, col := range columns {
		for _, f := range fields {
			if claimed[f.Name] {
				continue
			}
			if strings.EqualFold(col, f.Name) {
				claimed[f.Name] = true
				mappings[i] = ColumnMapping{Source: col, Target: f.Name, Reason: MatchExact}
				break
			}
		}
	}

	// Pass 2: normalized matches for the rest.
	for i, col := range columns {
		if mappings[i].Target != "" {
			continue
		}
		norm := normalizeName(col)
		mappings[i] = ColumnMapping{Source: col, Reason: MatchNone}
		if norm == "" {
			continue
		}
		for _, f := range fields {
			if claimed[f.Name] {
				continue
			}
			if norm == normalizeName(f.Name) {
				claimed[f.Name] = true
				mappings[i] = ColumnMapping{Source: col, Target: f.Name, Reason: MatchNormalized}
				break
			}
		}
	}

	return mappings
}
