package sources_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"inventory/internal/importer"
)

func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legacy.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	stmts := []string{
		`CREATE TABLE old_stock (name TEXT, quantity INTEGER, price REAL)`,
		`INSERT INTO old_stock VALUES ('Sword', 2, 100.0), ('Bow', NULL, 75.5)`,
		`CREATE TABLE suppliers (name TEXT)`,
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestSQLiteSource_Parse(t *testing.T) {
	path := seedSQLite(t)

	source, err := importer.SourceFor(path)
	if err != nil {
		t.Fatalf("SourceFor: %v", err)
	}
	tables, err := source.Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}

	// Tables come back in name order.
	stock := tables[0]
	if stock.Name != "old_stock" {
		t.Fatalf("table = %q", stock.Name)
	}
	if len(stock.Columns) != 3 || stock.Columns[0] != "name" {
		t.Errorf("columns = %v", stock.Columns)
	}
	if len(stock.Rows) != 2 {
		t.Fatalf("rows = %d", len(stock.Rows))
	}
	if stock.Rows[0][0] != "Sword" || stock.Rows[0][1] != "2" {
		t.Errorf("row = %v", stock.Rows[0])
	}
	if stock.Rows[1][1] != "" {
		t.Errorf("NULL must read back as empty text, got %q", stock.Rows[1][1])
	}

	if tables[1].Name != "suppliers" || len(tables[1].Rows) != 0 {
		t.Errorf("suppliers = %+v", tables[1])
	}
}
