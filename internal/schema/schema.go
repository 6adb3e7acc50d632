package schema

// ── Field definitions ───────────────────────────────────────
// Every inventory type is described by an ordered list of fields.
// The GUI renders its form from this, the importer maps columns
// against it, and the item model validates against it.

// Kind is the data type of a field value.
type Kind string

const (
	KindText    Kind = "text"
	KindInteger Kind = "integer"
	KindDecimal Kind = "decimal"
	KindDate    Kind = "date"
)

// FieldDefinition describes one named, typed, possibly-required attribute.
// Immutable once registered.
type FieldDefinition struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

// TypeInfo is the picker-friendly view of an inventory type.
type TypeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
