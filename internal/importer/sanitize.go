package importer

import (
	"strings"

	"inventory/internal/schema"
)

// ── Sanitization ────────────────────────────────────────────
// Deterministic, idempotent normalization of raw cell text before
// type coercion. Every change to the raw text is reported with a
// reason tag; values that cannot be normalized are returned as-is and
// left for the validation stage to reject.

// Sanitize reason tags.
const (
	ReasonWhitespaceTrimmed = "whitespace-trimmed"
	ReasonCurrencyStripped  = "currency-stripped"
	ReasonThousandsRemoved  = "thousands-separator-removed"
	ReasonDecimalComma      = "decimal-comma"
	ReasonParensNegative    = "parentheses-negative"
	ReasonDigitsOnly        = "digits-only"
	ReasonDateNormalized    = "date-normalized"
)

// SanitizeEntry logs one normalization applied to one cell.
type SanitizeEntry struct {
	Row      int    `json:"row"` // 1-based data row index
	Field    string `json:"field"`
	Original string `json:"original"`
	Fixed    string `json:"fixed"`
	Reason   string `json:"reason"`
}

// SanitizeCell normalizes raw text for a target kind and returns the
// fixed text with the ordered reason tags for every change applied.
// Unparseable values come back unchanged with no reasons.
func SanitizeCell(raw string, kind schema.Kind) (string, []string) {
	var reasons []string

	s := strings.TrimSpace(raw)
	if s != raw {
		reasons = append(reasons, ReasonWhitespaceTrimmed)
	}
	if s == "" {
		return s, reasons
	}

	switch kind {
	case schema.KindInteger:
		return sanitizeInteger(raw, s, reasons)
	case schema.KindDecimal:
		return sanitizeDecimal(raw, s, reasons)
	case schema.KindDate:
		return sanitizeDate(s, reasons)
	default:
		return s, reasons
	}
}

func sanitizeInteger(raw, s string, reasons []string) (string, []string) {
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' || (r == '-' && i == 0) {
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	if stripped == "" || stripped == "-" {
		// Nothing numeric to keep; leave for validation.
		return raw, nil
	}
	if stripped != s {
		reasons = append(reasons, ReasonDigitsOnly)
	}
	return stripped, reasons
}

func sanitizeDecimal(raw, s string, reasons []string) (string, []string) {
	// Drop currency symbols and any other non-numeric noise, keeping
	// digits, separators, sign, and parentheses.
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || strings.ContainsRune(".,-()", r) {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return raw, nil
	}
	if cleaned != s {
		reasons = append(reasons, ReasonCurrencyStripped)
	}

	// "(1,234.00)" means a negative amount.
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
		reasons = append(reasons, ReasonParensNegative)
	}

	// Commas alongside a dot, or more than one comma, are thousands
	// separators; a single comma with no dot is a decimal comma.
	switch {
	case strings.Contains(cleaned, ",") && strings.Contains(cleaned, "."),
		strings.Count(cleaned, ",") > 1:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		reasons = append(reasons, ReasonThousandsRemoved)
	case strings.Contains(cleaned, ","):
		cleaned = strings.Replace(cleaned, ",", ".", 1)
		reasons = append(reasons, ReasonDecimalComma)
	}

	if _, err := schema.Coerce(cleaned, schema.KindDecimal); err != nil {
		// Still not a number; report the original untouched.
		return raw, nil
	}
	return cleaned, reasons
}

func sanitizeDate(s string, reasons []string) (string, []string) {
	canonical, err := schema.Coerce(s, schema.KindDate)
	if err != nil {
		return s, reasons
	}
	if fixed, ok := canonical.(string); ok && fixed != s {
		return fixed, append(reasons, ReasonDateNormalized)
	}
	return s, reasons
}
