package schema_test

import (
	"errors"
	"testing"

	"inventory/internal/schema"
)

// ─────────────────────────────────────────────────────────────
// Registry tests
// ─────────────────────────────────────────────────────────────

func TestRegistry_ListTypes(t *testing.T) {
	r := schema.NewRegistry()

	types := r.ListTypes()
	if len(types) != 5 {
		t.Fatalf("expected 5 built-in types, got %d", len(types))
	}
	if types[0].ID != schema.TypeWarehouse {
		t.Errorf("expected warehouse first, got %q", types[0].ID)
	}
	for _, info := range types {
		if info.Name == "" || info.Description == "" {
			t.Errorf("type %q missing name or description", info.ID)
		}
	}
}

func TestRegistry_FieldDefinitions(t *testing.T) {
	r := schema.NewRegistry()

	for _, info := range r.ListTypes() {
		fields, err := r.FieldsFor(info.ID)
		if err != nil {
			t.Fatalf("FieldsFor(%q): %v", info.ID, err)
		}
		if len(fields) == 0 {
			t.Fatalf("type %q has no fields", info.ID)
		}
		seen := map[string]bool{}
		for _, f := range fields {
			if f.Name == "" {
				t.Errorf("type %q has unnamed field", info.ID)
			}
			if seen[f.Name] {
				t.Errorf("type %q has duplicate field %q", info.ID, f.Name)
			}
			seen[f.Name] = true
		}
	}
}

func TestRegistry_FieldsForUnknown(t *testing.T) {
	r := schema.NewRegistry()

	_, err := r.FieldsFor("spaceship")
	var unknown *schema.UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTypeError, got %v", err)
	}
	if unknown.Type != "spaceship" {
		t.Errorf("expected type in error, got %q", unknown.Type)
	}
}

func TestRegistry_SetActiveType(t *testing.T) {
	r := schema.NewRegistry()

	if r.ActiveType() != schema.TypeWarehouse {
		t.Fatalf("expected warehouse by default, got %q", r.ActiveType())
	}
	if err := r.SetActiveType(schema.TypeLibrary); err != nil {
		t.Fatalf("SetActiveType: %v", err)
	}
	if r.ActiveType() != schema.TypeLibrary {
		t.Errorf("expected library, got %q", r.ActiveType())
	}
	if r.ActiveFields()[0].Name != "title" {
		t.Errorf("expected library fields after switch, got %q", r.ActiveFields()[0].Name)
	}
	if err := r.SetActiveType("nope"); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if r.ActiveType() != schema.TypeLibrary {
		t.Errorf("failed switch must not change active type")
	}
}

func TestRegistry_TableName(t *testing.T) {
	r := schema.NewRegistry()
	if r.TableName() != "warehouse_inventory" {
		t.Errorf("expected warehouse_inventory, got %q", r.TableName())
	}
	r.SetActiveType(schema.TypeRestaurant)
	if r.TableName() != "restaurant_inventory" {
		t.Errorf("expected restaurant_inventory, got %q", r.TableName())
	}
}
