package importer

import (
	"time"

	"inventory/internal/domain"
)

// ── Reports ─────────────────────────────────────────────────

// Row error reasons, matching the error taxonomy.
const (
	RowErrCoercion        = "TypeCoercionError"
	RowErrMissingRequired = "MissingRequiredField"
)

// RowError records one row that failed validation.
type RowError struct {
	Row    int    `json:"row"` // 1-based data row index
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Report is the outcome of running one source table through the
// mapping, sanitize, and validate stages. It is transient: produced
// per import run and only persisted if the caller commits the items.
type Report struct {
	SourceTable string          `json:"sourceTable"`
	TableName   string          `json:"tableName"` // slugified, collision-free
	Mapping     []ColumnMapping `json:"mapping"`
	SanitizeLog []SanitizeEntry `json:"sanitizeLog"`
	Errors      []RowError      `json:"validationErrors"`
	Items       []*domain.Item  `json:"records"`
	RowsParsed  int             `json:"rowsParsed"`
}

// CommitFailure records one item whose persistence failed. A single
// failure never aborts the rest of the batch.
type CommitFailure struct {
	Row int    `json:"row"`
	ID  string `json:"id"`
	Err string `json:"error"`
}

// CommitResult reports how a committed batch fared.
type CommitResult struct {
	RowsPersisted int             `json:"rowsPersisted"`
	Failures      []CommitFailure `json:"failures"`
}

// ImportRun is the durable log entry for one preview/commit/reject
// cycle of one source table.
type ImportRun struct {
	ID           string    `json:"id"`
	SourceFile   string    `json:"sourceFile"`
	TableName    string    `json:"tableName"`
	Status       string    `json:"status"` // "previewed" | "committed" | "rejected" | "error"
	RowsParsed   int       `json:"rowsParsed"`
	RowsAccepted int       `json:"rowsAccepted"`
	RowsRejected int       `json:"rowsRejected"`
	Error        string    `json:"error,omitempty"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
}
