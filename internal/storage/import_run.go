package storage

import (
	"inventory/internal/importer"
)

// ImportRunStore persists the history of import runs.
type ImportRunStore struct {
	db *DB
}

// NewImportRunStore creates an ImportRunStore.
func NewImportRunStore(db *DB) *ImportRunStore {
	return &ImportRunStore{db: db}
}

// CreateRun records one finished import run.
func (s *ImportRunStore) CreateRun(run *importer.ImportRun) error {
	_, err := s.db.conn.Exec(
		`INSERT INTO import_runs
		 (id, source_file, table_name, status, rows_parsed, rows_accepted, rows_rejected, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SourceFile, run.TableName, run.Status,
		run.RowsParsed, run.RowsAccepted, run.RowsRejected,
		run.Error, run.StartedAt, run.FinishedAt,
	)
	return err
}

// ListRuns returns the most recent runs, newest first.
func (s *ImportRunStore) ListRuns(limit int) ([]importer.ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.conn.Query(
		`SELECT id, source_file, table_name, status, rows_parsed, rows_accepted, rows_rejected, error, started_at, finished_at
		 FROM import_runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []importer.ImportRun
	for rows.Next() {
		run := importer.ImportRun{}
		if err := rows.Scan(
			&run.ID, &run.SourceFile, &run.TableName, &run.Status,
			&run.RowsParsed, &run.RowsAccepted, &run.RowsRejected,
			&run.Error, &run.StartedAt, &run.FinishedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}
