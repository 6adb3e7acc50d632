package schema

import (
	"fmt"
	"strings"
	"sync"
)

// ── Registry ────────────────────────────────────────────────
// Holds the configured inventory types and the currently active one.
// A Registry is an explicit handle passed to every consumer, so tests
// and future multi-window sessions can each run their own active type.

// UnknownTypeError reports a lookup of an unregistered inventory type.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown inventory type: %q", e.Type)
}

// Registry maps inventory type ids to their field definitions and
// tracks the active type. Safe for concurrent reads.
type Registry struct {
	mu     sync.RWMutex
	active string

	order   []string
	schemas map[string][]FieldDefinition
}

// Built-in inventory types.
const (
	TypeWarehouse   = "warehouse"
	TypeRetail      = "retail"
	TypeLibrary     = "library"
	TypeRestaurant  = "restaurant"
	TypeElectronics = "electronics"
)

var builtinSchemas = map[string][]FieldDefinition{
	TypeWarehouse: {
		{Name: "name", Kind: KindText, Required: true},
		{Name: "sku", Kind: KindText},
		{Name: "quantity", Kind: KindInteger, Required: true},
		{Name: "price", Kind: KindDecimal, Required: true},
		{Name: "category", Kind: KindText},
		{Name: "supplier", Kind: KindText},
		{Name: "location", Kind: KindText},
		{Name: "min_stock", Kind: KindInteger, Default: int64(0)},
	},
	TypeRetail: {
		{Name: "name", Kind: KindText, Required: true},
		{Name: "barcode", Kind: KindText},
		{Name: "quantity", Kind: KindInteger, Required: true},
		{Name: "cost_price", Kind: KindDecimal, Required: true},
		{Name: "selling_price", Kind: KindDecimal, Required: true},
		{Name: "brand", Kind: KindText},
		{Name: "category", Kind: KindText},
		{Name: "discount", Kind: KindDecimal, Default: 0.0},
	},
	TypeLibrary: {
		{Name: "title", Kind: KindText, Required: true},
		{Name: "author", Kind: KindText, Required: true},
		{Name: "isbn", Kind: KindText},
		{Name: "copies_total", Kind: KindInteger, Required: true},
		{Name: "copies_available", Kind: KindInteger, Required: true},
		{Name: "genre", Kind: KindText},
		{Name: "publisher", Kind: KindText},
		{Name: "year", Kind: KindInteger},
		{Name: "location", Kind: KindText},
	},
	TypeRestaurant: {
		{Name: "name", Kind: KindText, Required: true},
		{Name: "quantity", Kind: KindDecimal, Required: true},
		{Name: "unit", Kind: KindText, Required: true},
		{Name: "cost_per_unit", Kind: KindDecimal, Required: true},
		{Name: "supplier", Kind: KindText},
		{Name: "expiry_date", Kind: KindDate},
		{Name: "category", Kind: KindText},
		{Name: "min_stock", Kind: KindDecimal, Default: 0.0},
	},
	TypeElectronics: {
		{Name: "name", Kind: KindText, Required: true},
		{Name: "model", Kind: KindText, Required: true},
		{Name: "brand", Kind: KindText, Required: true},
		{Name: "quantity", Kind: KindInteger, Required: true},
		{Name: "price", Kind: KindDecimal, Required: true},
		{Name: "warranty_months", Kind: KindInteger, Default: int64(12)},
		{Name: "category", Kind: KindText},
		{Name: "specifications", Kind: KindText},
	},
}

var typeDescriptions = map[string]string{
	TypeWarehouse:   "General warehouse inventory with SKU and location tracking",
	TypeRetail:      "Retail store with cost/selling prices and discounts",
	TypeLibrary:     "Library books with author, ISBN, and copy management",
	TypeRestaurant:  "Restaurant ingredients with units and expiry dates",
	TypeElectronics: "Electronics with models, brands, and warranties",
}

// NewRegistry returns a Registry with the built-in types registered
// and the warehouse type active.
func NewRegistry() *Registry {
	r := &Registry{
		active: TypeWarehouse,
		order: []string{
			TypeWarehouse, TypeRetail, TypeLibrary, TypeRestaurant, TypeElectronics,
		},
		schemas: make(map[string][]FieldDefinition, len(builtinSchemas)),
	}
	for id, fields := range builtinSchemas {
		r.schemas[id] = fields
	}
	return r
}

// ListTypes returns all registered inventory types in registration order.
func (r *Registry) ListTypes() []TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]TypeInfo, 0, len(r.order))
	for _, id := range r.order {
		infos = append(infos, TypeInfo{
			ID:          id,
			Name:        title(id),
			Description: typeDescriptions[id],
		})
	}
	return infos
}

// FieldsFor returns the ordered field definitions for a type.
func (r *Registry) FieldsFor(typ string) ([]FieldDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fields, ok := r.schemas[typ]
	if !ok {
		return nil, &UnknownTypeError{Type: typ}
	}
	return fields, nil
}

// SetActiveType atomically swaps the active inventory type.
// Items created under a prior type are not migrated; they are
// reconciled with defaults on read.
func (r *Registry) SetActiveType(typ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schemas[typ]; !ok {
		return &UnknownTypeError{Type: typ}
	}
	r.active = typ
	return nil
}

// ActiveType returns the currently active inventory type id.
func (r *Registry) ActiveType() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// ActiveFields returns the field definitions of the active type.
func (r *Registry) ActiveFields() []FieldDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemas[r.active]
}

// TableName returns the storage table name for the active type,
// e.g. "warehouse_inventory".
func (r *Registry) TableName() string {
	return r.ActiveType() + "_inventory"
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
