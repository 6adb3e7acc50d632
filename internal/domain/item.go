package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"inventory/internal/schema"
)

// ── Item ────────────────────────────────────────────────────
// One inventory entry. Values is keyed by field name and shaped by
// whichever inventory type was active at creation time; it is
// validated against the field definitions at every boundary.

// Item is a single inventory entry.
type Item struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Values    map[string]any `json:"values"`
}

// NewItem builds a validated Item from raw values against the given
// field definitions. Required fields must be present and coercible;
// missing optional fields take the definition's default or the
// kind-appropriate zero value (date fields stay absent).
func NewItem(fields []schema.FieldDefinition, values map[string]any) (*Item, error) {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		raw, ok := values[f.Name]
		if ok && !isBlank(raw) {
			coerced, err := schema.Coerce(raw, f.Kind)
			if err != nil {
				if ce, isCoerce := err.(*schema.CoercionError); isCoerce {
					ce.Field = f.Name
				}
				return nil, err
			}
			out[f.Name] = coerced
			continue
		}
		if f.Required {
			return nil, &MissingRequiredFieldError{Field: f.Name}
		}
		if f.Default != nil {
			out[f.Name] = f.Default
		} else if zero := schema.ZeroValue(f.Kind); zero != nil {
			out[f.Name] = zero
		}
	}

	now := time.Now()
	return &Item{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		Values:    out,
	}, nil
}

// UpdateField returns a copy of item with one value replaced and
// UpdatedAt refreshed. The input item is not mutated.
func UpdateField(item *Item, fields []schema.FieldDefinition, name string, value any) (*Item, error) {
	var def *schema.FieldDefinition
	for i := range fields {
		if fields[i].Name == name {
			def = &fields[i]
			break
		}
	}
	if def == nil {
		return nil, &UnknownFieldError{Field: name}
	}

	coerced, err := schema.Coerce(value, def.Kind)
	if err != nil {
		if ce, ok := err.(*schema.CoercionError); ok {
			ce.Field = name
		}
		return nil, err
	}

	values := make(map[string]any, len(item.Values))
	for k, v := range item.Values {
		values[k] = v
	}
	values[name] = coerced

	return &Item{
		ID:        item.ID,
		CreatedAt: item.CreatedAt,
		UpdatedAt: time.Now(),
		Values:    values,
	}, nil
}

// Search returns the items whose text-kind field values contain query,
// case-insensitively, preserving input order. An empty query matches
// everything.
func Search(items []*Item, fields []schema.FieldDefinition, query string) []*Item {
	if query == "" {
		return items
	}
	query = strings.ToLower(query)

	var results []*Item
	for _, item := range items {
		for _, f := range fields {
			if f.Kind != schema.KindText {
				continue
			}
			if s, ok := item.Values[f.Name].(string); ok && strings.Contains(strings.ToLower(s), query) {
				results = append(results, item)
				break
			}
		}
	}
	return results
}

// Reconcile adjusts a stored values map against the given field
// definitions: missing or unusable values are filled with the default
// or zero value, and the names of filled fields are returned so
// callers can surface the reconciliation. Extra keys from a prior
// inventory type are kept untouched; switching types is never a
// destructive migration.
func Reconcile(fields []schema.FieldDefinition, stored map[string]any) (map[string]any, []string) {
	out := make(map[string]any, len(stored))
	for k, v := range stored {
		out[k] = v
	}

	var defaulted []string
	for _, f := range fields {
		if raw, ok := out[f.Name]; ok {
			if coerced, err := schema.Coerce(raw, f.Kind); err == nil {
				out[f.Name] = coerced
				continue
			}
		}
		if f.Default != nil {
			out[f.Name] = f.Default
		} else if zero := schema.ZeroValue(f.Kind); zero != nil {
			out[f.Name] = zero
		} else {
			continue
		}
		defaulted = append(defaulted, f.Name)
	}
	return out, defaulted
}

// TotalValue computes price × quantity for an item when both fields
// are present and numeric; otherwise 0.
func TotalValue(item *Item) float64 {
	return asFloat(item.Values["price"]) * asFloat(item.Values["quantity"])
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
