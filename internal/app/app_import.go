package app

import (
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"inventory/internal/importer"
	"inventory/internal/service"
)

// ── Datasheet Import ───────────────────────────────────────

// PickDatasheetFile opens a native file dialog for selecting a
// datasheet to import.
func (a *App) PickDatasheetFile() (string, error) {
	path, err := wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Select Datasheet",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "CSV Files", Pattern: "*.csv;*.tsv"},
			{DisplayName: "Excel Files", Pattern: "*.xlsx"},
			{DisplayName: "Text Files", Pattern: "*.txt"},
			{DisplayName: "SQLite Databases", Pattern: "*.db;*.sqlite;*.sqlite3"},
			{DisplayName: "All Files", Pattern: "*.*"},
		},
	})
	return path, err
}

// PreviewImport runs the pipeline on path without writing anything and
// returns the per-table reports plus a commit token.
func (a *App) PreviewImport(path string) (*service.PreviewResult, error) {
	return a.imports.PreviewFile(a.ctx, path)
}

// CommitImport persists the validated items of a pending preview.
func (a *App) CommitImport(token string) (*service.CommitSummary, error) {
	return a.imports.CommitPreview(a.ctx, token)
}

// RejectImport discards a pending preview.
func (a *App) RejectImport(token string) error {
	return a.imports.RejectPreview(a.ctx, token)
}

// ListImportRuns returns the most recent import run log entries.
func (a *App) ListImportRuns(limit int) ([]importer.ImportRun, error) {
	return a.imports.ListRuns(limit)
}

// SupportedImportExtensions returns the extensions the pipeline accepts.
func (a *App) SupportedImportExtensions() []string {
	return a.imports.SupportedExtensions()
}
