package sources

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"inventory/internal/importer"
)

// ── SQLite file source ──────────────────────────────────────
// Imports from another local SQLite database file (for example an
// older inventory.db). Every user table becomes one source table;
// cell values are read back as text and go through the same
// sanitize/validate stages as spreadsheet cells.

type sqliteFileSource struct{}

func init() { importer.RegisterSource(&sqliteFileSource{}) }

func (s *sqliteFileSource) Spec() importer.SourceSpec {
	return importer.SourceSpec{
		Type:       "sqlite_file",
		Label:      "SQLite Database",
		Extensions: []string{".db", ".sqlite", ".sqlite3"},
	}
}

func (s *sqliteFileSource) Parse(path string) ([]importer.Table, error) {
	conn, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer conn.Close()

	names, err := listUserTables(conn)
	if err != nil {
		return nil, err
	}

	tables := make([]importer.Table, 0, len(names))
	for _, name := range names {
		t, err := readTable(conn, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		tables = append(tables, importer.Table{Name: fileStem(path)})
	}
	return tables, nil
}

func listUserTables(conn *sql.DB) ([]string, error) {
	rows, err := conn.Query(
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readTable(conn *sql.DB, name string) (importer.Table, error) {
	rows, err := conn.Query(`SELECT * FROM "` + name + `"`)
	if err != nil {
		return importer.Table{}, fmt.Errorf("read table %q: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return importer.Table{}, err
	}

	table := importer.Table{
		Name:    name,
		Columns: importer.NormalizeColumns(columns),
	}

	scan := make([]any, len(columns))
	cells := make([]sql.NullString, len(columns))
	for i := range cells {
		scan[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return importer.Table{}, err
		}
		row := make([]string, len(columns))
		for i, cell := range cells {
			if cell.Valid {
				row[i] = cell.String
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, rows.Err()
}
