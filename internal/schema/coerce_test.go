package schema_test

import (
	"errors"
	"testing"

	"inventory/internal/schema"
)

// ─────────────────────────────────────────────────────────────
// Coercion tests
// ─────────────────────────────────────────────────────────────

func TestCoerce_Integer(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{"42", 42},
		{" 42 ", 42},
		{"-7", -7},
		{42, 42},
		{int64(42), 42},
		{42.0, 42},          // JSON numbers arrive as float64
		{"2.0000001", 2},    // within epsilon
		{2.0000001, 2},
	}
	for _, c := range cases {
		got, err := schema.Coerce(c.in, schema.KindInteger)
		if err != nil {
			t.Errorf("Coerce(%v): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Coerce(%v) = %v, want %d", c.in, got, c.want)
		}
	}
}

func TestCoerce_IntegerRejects(t *testing.T) {
	for _, in := range []any{"two", "2.5", 2.5, nil, ""} {
		_, err := schema.Coerce(in, schema.KindInteger)
		var ce *schema.CoercionError
		if !errors.As(err, &ce) {
			t.Errorf("Coerce(%v): expected CoercionError, got %v", in, err)
		}
	}
}

func TestCoerce_Decimal(t *testing.T) {
	got, err := schema.Coerce("19.99", schema.KindDecimal)
	if err != nil {
		t.Fatalf("Coerce: %v", err)
	}
	if got != 19.99 {
		t.Errorf("got %v, want 19.99", got)
	}
	if v, _ := schema.Coerce(int64(3), schema.KindDecimal); v != 3.0 {
		t.Errorf("int64 input: got %v, want 3.0", v)
	}
	if _, err := schema.Coerce("a lot", schema.KindDecimal); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestCoerce_Text(t *testing.T) {
	if v, _ := schema.Coerce("hello", schema.KindText); v != "hello" {
		t.Errorf("got %v", v)
	}
	if v, _ := schema.Coerce(42, schema.KindText); v != "42" {
		t.Errorf("non-string input: got %v, want \"42\"", v)
	}
	if v, _ := schema.Coerce(nil, schema.KindText); v != "" {
		t.Errorf("nil input: got %v, want empty string", v)
	}
}

func TestCoerce_Date(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024/03/15", "2024-03-15"},
		{"15/03/2024", "2024-03-15"},
		{"15-03-2024", "2024-03-15"},
		{"Mar 15, 2024", "2024-03-15"},
	}
	for _, c := range cases {
		got, err := schema.Coerce(c.in, schema.KindDate)
		if err != nil {
			t.Errorf("Coerce(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Coerce(%q) = %v, want %q", c.in, got, c.want)
		}
	}
	if _, err := schema.Coerce("yesterday", schema.KindDate); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestZeroValue(t *testing.T) {
	if schema.ZeroValue(schema.KindInteger) != int64(0) {
		t.Error("integer zero should be int64(0)")
	}
	if schema.ZeroValue(schema.KindDecimal) != 0.0 {
		t.Error("decimal zero should be 0.0")
	}
	if schema.ZeroValue(schema.KindText) != "" {
		t.Error("text zero should be empty string")
	}
	if schema.ZeroValue(schema.KindDate) != nil {
		t.Error("date has no zero value")
	}
}
