package sources

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"inventory/internal/importer"
)

// ── CSV / TSV source ────────────────────────────────────────
// Reads one table from a delimited text file. The delimiter is
// detected from the first few lines, the header from whether the
// first row looks numeric.

type csvFileSource struct{}

func init() { importer.RegisterSource(&csvFileSource{}) }

func (s *csvFileSource) Spec() importer.SourceSpec {
	return importer.SourceSpec{
		Type:       "csv_file",
		Label:      "CSV File",
		Extensions: []string{".csv", ".tsv"},
	}
}

func (s *csvFileSource) Parse(path string) ([]importer.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = DetectDelimiter(string(data))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	stem := fileStem(path)
	if len(records) == 0 {
		return []importer.Table{{Name: stem}}, nil
	}

	columns, rows := SplitHeader(records)
	return []importer.Table{{
		Name:    stem,
		Columns: importer.NormalizeColumns(columns),
		Rows:    rows,
	}}, nil
}

// DetectDelimiter counts candidate delimiters over the first five
// lines and picks the most frequent, defaulting to comma.
func DetectDelimiter(sample string) rune {
	lines := strings.SplitN(sample, "\n", 6)
	if len(lines) == 6 {
		lines = lines[:5]
	}
	head := strings.Join(lines, "\n")

	best, bestCount := ',', 0
	for _, cand := range []rune{'\t', ',', ';', '|'} {
		if n := strings.Count(head, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// SplitHeader decides whether the first record is a header row: it is
// when any cell is non-numeric or its width differs from the next row.
// Headerless data gets generated col_N names.
func SplitHeader(records [][]string) ([]string, [][]string) {
	first := records[0]

	isHeader := false
	for _, cell := range first {
		if !isNumeric(cell) {
			isHeader = true
			break
		}
	}
	if len(records) > 1 && len(first) != len(records[1]) {
		isHeader = true
	}

	if isHeader {
		return first, records[1:]
	}

	columns := make([]string, len(first))
	for i := range columns {
		columns[i] = fmt.Sprintf("col_%d", i+1)
	}
	return columns, records
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
