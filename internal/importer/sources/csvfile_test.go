package sources_test

import (
	"os"
	"path/filepath"
	"testing"

	"inventory/internal/importer"
	"inventory/internal/importer/sources"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func parseOne(t *testing.T, path string) importer.Table {
	t.Helper()
	source, err := importer.SourceFor(path)
	if err != nil {
		t.Fatalf("SourceFor: %v", err)
	}
	tables, err := source.Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	return tables[0]
}

// ─────────────────────────────────────────────────────────────
// Delimiter detection
// ─────────────────────────────────────────────────────────────

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		sample string
		want   rune
	}{
		{"a,b,c\n1,2,3", ','},
		{"a\tb\tc\n1\t2\t3", '\t'},
		{"a;b;c\n1;2;3", ';'},
		{"a|b|c\n1|2|3", '|'},
		{"justoneword", ','},
	}
	for _, c := range cases {
		if got := sources.DetectDelimiter(c.sample); got != c.want {
			t.Errorf("DetectDelimiter(%q) = %q, want %q", c.sample, got, c.want)
		}
	}
}

// ─────────────────────────────────────────────────────────────
// Header detection
// ─────────────────────────────────────────────────────────────

func TestSplitHeader(t *testing.T) {
	columns, rows := sources.SplitHeader([][]string{
		{"name", "qty"},
		{"Sword", "2"},
	})
	if columns[0] != "name" || len(rows) != 1 {
		t.Errorf("text first row must be a header: %v %v", columns, rows)
	}

	columns, rows = sources.SplitHeader([][]string{
		{"1", "2"},
		{"3", "4"},
	})
	if columns[0] != "col_1" || len(rows) != 2 {
		t.Errorf("numeric first row must be data: %v %v", columns, rows)
	}

	columns, rows = sources.SplitHeader([][]string{
		{"name", "qty", "price"},
	})
	if len(columns) != 3 || len(rows) != 0 {
		t.Errorf("header-only file must have zero rows: %v %v", columns, rows)
	}
}

// ─────────────────────────────────────────────────────────────
// CSV parsing
// ─────────────────────────────────────────────────────────────

func TestCSVSource_Parse(t *testing.T) {
	path := writeFile(t, "Stock List.csv",
		"Item Name,Quantity,Unit Price\nSword,2,100.00\n\"Shield, large\",1,50\n")

	table := parseOne(t, path)
	if table.Name != "Stock List" {
		t.Errorf("table name = %q", table.Name)
	}
	want := []string{"item_name", "quantity", "unit_price"}
	for i := range want {
		if table.Columns[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, table.Columns[i], want[i])
		}
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d", len(table.Rows))
	}
	if table.Rows[1][0] != "Shield, large" {
		t.Errorf("quoted cell = %q", table.Rows[1][0])
	}
}

func TestCSVSource_Semicolons(t *testing.T) {
	path := writeFile(t, "stock.csv", "name;qty\nSword;2\n")

	table := parseOne(t, path)
	if len(table.Columns) != 2 {
		t.Fatalf("columns = %v", table.Columns)
	}
	if table.Rows[0][0] != "Sword" {
		t.Errorf("cell = %q", table.Rows[0][0])
	}
}

func TestCSVSource_TSV(t *testing.T) {
	path := writeFile(t, "stock.tsv", "name\tqty\nSword\t2\n")

	table := parseOne(t, path)
	if table.Columns[1] != "qty" {
		t.Errorf("columns = %v", table.Columns)
	}
	if table.Rows[0][1] != "2" {
		t.Errorf("cell = %q", table.Rows[0][1])
	}
}

func TestCSVSource_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	table := parseOne(t, path)
	if table.Name != "empty" || len(table.Rows) != 0 {
		t.Errorf("table = %+v", table)
	}
}

// ─────────────────────────────────────────────────────────────
// Text parsing
// ─────────────────────────────────────────────────────────────

func TestTextSource_Structured(t *testing.T) {
	path := writeFile(t, "stock.txt", "name,qty\nSword,2\nBow,1\n")

	table := parseOne(t, path)
	if len(table.Columns) != 2 || table.Columns[0] != "name" {
		t.Fatalf("columns = %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Errorf("rows = %d", len(table.Rows))
	}
}

func TestTextSource_Unstructured(t *testing.T) {
	path := writeFile(t, "notes.txt", "first line\n\nsecond line\n")

	table := parseOne(t, path)
	if len(table.Columns) != 1 || table.Columns[0] != "text" {
		t.Fatalf("columns = %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("blank lines must be skipped, rows = %d", len(table.Rows))
	}
	if table.Rows[0][0] != "first line" {
		t.Errorf("row = %v", table.Rows[0])
	}
}
