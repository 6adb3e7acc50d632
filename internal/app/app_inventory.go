package app

import (
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"inventory/internal/domain"
	"inventory/internal/schema"
	"inventory/internal/service"
)

// ── Inventory Types ────────────────────────────────────────

// ListInventoryTypes returns every registered inventory type for the
// type picker.
func (a *App) ListInventoryTypes() []schema.TypeInfo {
	return a.inventory.ListTypes()
}

// ActiveInventoryType returns the currently selected type name.
func (a *App) ActiveInventoryType() string {
	return a.inventory.ActiveType()
}

// ActiveFields returns the field definitions the item form should render.
func (a *App) ActiveFields() []schema.FieldDefinition {
	return a.inventory.ActiveFields()
}

// SetInventoryType switches the active type. Existing items are kept
// and reconciled on read.
func (a *App) SetInventoryType(typ string) error {
	return a.inventory.SetInventoryType(a.ctx, typ)
}

// ── Items ──────────────────────────────────────────────────

func (a *App) CreateItem(values map[string]any) (*domain.Item, error) {
	return a.inventory.CreateItem(a.ctx, values)
}

func (a *App) GetItem(id string) (*service.ItemView, error) {
	return a.inventory.GetItem(id)
}

func (a *App) ListItems() ([]*service.ItemView, error) {
	return a.inventory.ListItems()
}

func (a *App) UpdateItemField(id, field string, value any) (*domain.Item, error) {
	return a.inventory.UpdateItemField(a.ctx, id, field, value)
}

func (a *App) DeleteItem(id string) error {
	return a.inventory.DeleteItem(a.ctx, id)
}

func (a *App) SearchItems(query string) ([]*service.ItemView, error) {
	return a.inventory.SearchItems(query)
}

// TotalInventoryValue sums price times quantity across the inventory.
func (a *App) TotalInventoryValue() (float64, error) {
	return a.inventory.TotalValue()
}

// ── JSON Export / Import ───────────────────────────────────

// ExportInventoryJSON asks for a destination and writes the full
// inventory as JSON. Returns the number of items written, or 0 if the
// user cancelled.
func (a *App) ExportInventoryJSON() (int, error) {
	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export Inventory",
		DefaultFilename: "inventory.json",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "JSON Files", Pattern: "*.json"},
		},
	})
	if err != nil || path == "" {
		return 0, err
	}
	return a.inventory.ExportJSON(path)
}

// ImportInventoryJSON asks for a previously exported file and upserts
// its items. Returns the number of items imported, or 0 if the user
// cancelled.
func (a *App) ImportInventoryJSON() (int, error) {
	path, err := wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Import Inventory",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "JSON Files", Pattern: "*.json"},
		},
	})
	if err != nil || path == "" {
		return 0, err
	}
	return a.inventory.ImportJSON(a.ctx, path)
}
