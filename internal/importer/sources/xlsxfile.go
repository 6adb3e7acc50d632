package sources

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"inventory/internal/importer"
)

// ── Spreadsheet source ──────────────────────────────────────
// Reads an Excel workbook; every sheet with data becomes one table.
// With multiple sheets the table name is "<stem>_<sheet>".

type xlsxFileSource struct{}

func init() { importer.RegisterSource(&xlsxFileSource{}) }

func (s *xlsxFileSource) Spec() importer.SourceSpec {
	return importer.SourceSpec{
		Type:       "xlsx_file",
		Label:      "Excel Workbook",
		Extensions: []string{".xlsx"},
	}
}

func (s *xlsxFileSource) Parse(path string) ([]importer.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	stem := fileStem(path)
	sheets := f.GetSheetList()

	var tables []importer.Table
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		var grid [][]string
		for _, row := range rows {
			if !rowEmpty(row) {
				grid = append(grid, row)
			}
		}
		if len(grid) == 0 {
			continue
		}

		name := stem
		if len(sheets) > 1 {
			name = stem + "_" + sheet
		}

		columns, dataRows := SplitHeader(grid)
		tables = append(tables, importer.Table{
			Name:    name,
			Columns: importer.NormalizeColumns(columns),
			Rows:    dataRows,
		})
	}

	if len(tables) == 0 {
		tables = append(tables, importer.Table{Name: stem})
	}
	return tables, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
