package importer

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/domain"
	"inventory/internal/schema"
)

// ── Pipeline ────────────────────────────────────────────────
// One import run moves through Parsed → Mapped → Sanitized →
// Validated, and ends Committed or Rejected. Preview runs every stage
// up to Validated and never writes; committing is an explicit opt-in
// on the returned reports.

// Pipeline turns datasheet files into validated item batches against
// the active inventory type.
type Pipeline struct {
	registry *schema.Registry
}

// New returns a Pipeline bound to a schema registry handle.
func New(registry *schema.Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// Preview parses path and runs every table through mapping,
// sanitization, and validation. Nothing is persisted. A file with
// zero data rows succeeds with an empty report.
func (p *Pipeline) Preview(path string) ([]*Report, error) {
	source, err := SourceFor(path)
	if err != nil {
		return nil, err
	}
	tables, err := source.Parse(path)
	if err != nil {
		var unreadable *UnreadableSourceError
		if errors.As(err, &unreadable) {
			return nil, err
		}
		return nil, &UnreadableSourceError{Path: path, Err: err}
	}

	DisambiguateNames(tables)

	fields := p.registry.ActiveFields()
	reports := make([]*Report, 0, len(tables))
	for i := range tables {
		reports = append(reports, p.analyzeTable(&tables[i], fields))
	}
	return reports, nil
}

// analyzeTable runs the Mapped, Sanitized, and Validated stages for
// one parsed table.
func (p *Pipeline) analyzeTable(t *Table, fields []schema.FieldDefinition) *Report {
	report := &Report{
		SourceTable: t.Name,
		TableName:   t.Name,
		Mapping:     MapColumns(t.Columns, fields),
		RowsParsed:  len(t.Rows),
	}

	fieldKinds := make(map[string]schema.Kind, len(fields))
	for _, f := range fields {
		fieldKinds[f.Name] = f.Kind
	}

	for rowIdx, row := range t.Rows {
		rowNum := rowIdx + 1

		// Sanitized: normalize each mapped cell, logging every change.
		values := make(map[string]any, len(report.Mapping))
		for colIdx, m := range report.Mapping {
			if m.Target == "" || colIdx >= len(row) {
				continue
			}
			raw := row[colIdx]
			fixed, reasons := SanitizeCell(raw, fieldKinds[m.Target])
			for _, reason := range reasons {
				report.SanitizeLog = append(report.SanitizeLog, SanitizeEntry{
					Row:      rowNum,
					Field:    m.Target,
					Original: raw,
					Fixed:    fixed,
					Reason:   reason,
				})
			}
			if fixed != "" {
				values[m.Target] = fixed
			}
		}

		// Validated: re-run the item model's coercion rules.
		item, err := domain.NewItem(fields, values)
		if err != nil {
			report.Errors = append(report.Errors, rowError(rowNum, err))
			continue
		}
		report.Items = append(report.Items, item)
	}

	return report
}

// Commit persists a validated report's items one by one. Per-row
// persistence failures are collected, not fatal; partial success is
// reported, never silently swallowed.
func (p *Pipeline) Commit(ctx context.Context, report *Report, store domain.ItemStore) (*CommitResult, error) {
	result := &CommitResult{}
	inventoryType := p.registry.ActiveType()

	for i, item := range report.Items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		row, err := domain.ToStored(item, inventoryType)
		if err == nil {
			err = store.SaveItem(row)
		}
		if err != nil {
			result.Failures = append(result.Failures, CommitFailure{
				Row: i + 1,
				ID:  item.ID,
				Err: err.Error(),
			})
			continue
		}
		result.RowsPersisted++
	}
	return result, nil
}

func rowError(row int, err error) RowError {
	var (
		coerce  *schema.CoercionError
		missing *domain.MissingRequiredFieldError
	)
	switch {
	case errors.As(err, &coerce):
		return RowError{
			Row:    row,
			Field:  coerce.Field,
			Value:  fmt.Sprint(coerce.Value),
			Reason: RowErrCoercion,
		}
	case errors.As(err, &missing):
		return RowError{Row: row, Field: missing.Field, Reason: RowErrMissingRequired}
	default:
		return RowError{Row: row, Reason: err.Error()}
	}
}
