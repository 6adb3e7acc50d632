package sources

import (
	"fmt"
	"os"
	"strings"

	"inventory/internal/importer"
)

// ── Plain-text source ───────────────────────────────────────
// Attempts to treat a .txt file as delimited data; when the lines
// don't share a consistent field count it falls back to one "text"
// column with a row per line.

type textFileSource struct{}

func init() { importer.RegisterSource(&textFileSource{}) }

func (s *textFileSource) Spec() importer.SourceSpec {
	return importer.SourceSpec{
		Type:       "text_file",
		Label:      "Text File",
		Extensions: []string{".txt"},
	}
}

func (s *textFileSource) Parse(path string) ([]importer.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	stem := fileStem(path)
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return []importer.Table{{Name: stem}}, nil
	}

	delim := DetectDelimiter(strings.Join(lines, "\n"))
	if structured, ok := splitStructured(lines, string(delim)); ok {
		columns, rows := SplitHeader(structured)
		return []importer.Table{{
			Name:    stem,
			Columns: importer.NormalizeColumns(columns),
			Rows:    rows,
		}}, nil
	}

	// Unstructured: one text column, one row per line.
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = []string{line}
	}
	return []importer.Table{{Name: stem, Columns: []string{"text"}, Rows: rows}}, nil
}

// splitStructured splits every line on delim when the first few lines
// agree on a field count greater than one.
func splitStructured(lines []string, delim string) ([][]string, bool) {
	probe := lines
	if len(probe) > 10 {
		probe = probe[:10]
	}
	want := len(strings.Split(probe[0], delim))
	if want < 2 {
		return nil, false
	}
	for _, line := range probe[1:] {
		if len(strings.Split(line, delim)) != want {
			return nil, false
		}
	}

	rows := make([][]string, len(lines))
	for i, line := range lines {
		cells := strings.Split(line, delim)
		for j := range cells {
			cells[j] = strings.TrimSpace(cells[j])
		}
		rows[i] = cells
	}
	return rows, true
}
