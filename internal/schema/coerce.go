package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ── Coercion ────────────────────────────────────────────────
// Converts raw values (form input, parsed cells, stored JSON) into
// the canonical Go representation for a Kind:
//   text    → string
//   integer → int64
//   decimal → float64
//   date    → string in canonical "2006-01-02" form

// CoercionError reports a value that cannot be converted to its
// field's kind. Field is filled by the caller when known.
type CoercionError struct {
	Field string
	Kind  Kind
	Value any
}

func (e *CoercionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %q: cannot coerce %v to %s", e.Field, e.Value, e.Kind)
	}
	return fmt.Sprintf("cannot coerce %v to %s", e.Value, e.Kind)
}

// Tolerance when accepting floats as integers (e.g. "2.0" → 2).
const intEpsilon = 1e-6

// DateFormat is the canonical stored form for date fields.
const DateFormat = "2006-01-02"

// Accepted input layouts for date fields, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// Coerce converts value into the canonical representation of kind.
// JSON round-trips turn integers into float64, so integral floats
// are accepted for integer fields.
func Coerce(value any, kind Kind) (any, error) {
	switch kind {
	case KindText:
		return coerceText(value), nil
	case KindInteger:
		return coerceInteger(value)
	case KindDecimal:
		return coerceDecimal(value)
	case KindDate:
		return coerceDate(value)
	default:
		return nil, &CoercionError{Kind: kind, Value: value}
	}
}

// ZeroValue returns the kind-appropriate zero value. Date fields have
// no zero value; they are simply absent when not provided.
func ZeroValue(kind Kind) any {
	switch kind {
	case KindInteger:
		return int64(0)
	case KindDecimal:
		return 0.0
	case KindText:
		return ""
	default:
		return nil
	}
}

func coerceText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func coerceInteger(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if math.Abs(v-math.Round(v)) < intEpsilon {
			return int64(math.Round(v)), nil
		}
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			if math.Abs(f-math.Round(f)) < intEpsilon {
				return int64(math.Round(f)), nil
			}
		}
	}
	return nil, &CoercionError{Kind: KindInteger, Value: value}
}

func coerceDecimal(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, nil
		}
	}
	return nil, &CoercionError{Kind: KindDecimal, Value: value}
}

func coerceDate(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(DateFormat), nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(DateFormat), nil
			}
		}
	}
	return nil, &CoercionError{Kind: KindDate, Value: value}
}
