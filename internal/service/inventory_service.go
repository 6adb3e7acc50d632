package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"inventory/internal/domain"
	"inventory/internal/schema"
	"inventory/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Inventory Service — business logic for items and schema types
// ─────────────────────────────────────────────────────────────

// InventoryService owns item CRUD, search, and inventory-type
// switching. It is decoupled from the Wails App struct via the
// EventEmitter interface.
type InventoryService struct {
	registry *schema.Registry
	items    domain.ItemStore
	settings *storage.SettingsStore
	emitter  EventEmitter
	log      *zap.Logger
}

// NewInventoryService creates an InventoryService ready for use.
func NewInventoryService(
	registry *schema.Registry,
	items domain.ItemStore,
	settings *storage.SettingsStore,
	emitter EventEmitter,
	log *zap.Logger,
) *InventoryService {
	return &InventoryService{
		registry: registry,
		items:    items,
		settings: settings,
		emitter:  emitter,
		log:      log,
	}
}

// RestoreActiveType applies the persisted inventory type, if any.
// Called once at startup so the registry survives restarts.
func (s *InventoryService) RestoreActiveType() error {
	typ, err := s.settings.InventoryType()
	if err != nil {
		return fmt.Errorf("load inventory type: %w", err)
	}
	if typ == "" {
		return nil
	}
	if err := s.registry.SetActiveType(typ); err != nil {
		s.log.Warn("persisted inventory type no longer registered, keeping default",
			zap.String("type", typ))
		return nil
	}
	return nil
}

// ── Schema types ───────────────────────────────────────────

// ListTypes returns the registered inventory types in registration order.
func (s *InventoryService) ListTypes() []schema.TypeInfo {
	return s.registry.ListTypes()
}

// ActiveType returns the currently selected inventory type.
func (s *InventoryService) ActiveType() string {
	return s.registry.ActiveType()
}

// ActiveFields returns the field definitions of the active type.
func (s *InventoryService) ActiveFields() []schema.FieldDefinition {
	return s.registry.ActiveFields()
}

// SetInventoryType switches the active inventory type, persists the
// choice, and notifies the frontend. Stored items are untouched;
// they are reconciled against the new schema on read.
func (s *InventoryService) SetInventoryType(ctx context.Context, typ string) error {
	if err := s.registry.SetActiveType(typ); err != nil {
		return err
	}
	if err := s.settings.SetInventoryType(typ); err != nil {
		return fmt.Errorf("persist inventory type: %w", err)
	}
	s.log.Info("inventory type switched", zap.String("type", typ))
	s.emitter.Emit(ctx, "schema:changed", typ)
	return nil
}

// ── Item CRUD ──────────────────────────────────────────────

// ItemView is an item as presented to the frontend: reconciled against
// the active schema, with the names of any fields that had to be
// filled from defaults.
type ItemView struct {
	*domain.Item
	DefaultedFields []string `json:"defaultedFields,omitempty"`
}

// CreateItem validates raw values against the active schema and
// persists the resulting item.
func (s *InventoryService) CreateItem(ctx context.Context, values map[string]any) (*domain.Item, error) {
	item, err := domain.NewItem(s.registry.ActiveFields(), values)
	if err != nil {
		return nil, err
	}
	stored, err := domain.ToStored(item, s.registry.ActiveType())
	if err != nil {
		return nil, err
	}
	if err := s.items.SaveItem(stored); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	s.log.Info("item created",
		zap.String("id", item.ID),
		zap.String("type", s.registry.ActiveType()))
	s.emitter.Emit(ctx, "inventory:changed", item.ID)
	return item, nil
}

// GetItem loads one item, reconciled against the active schema.
func (s *InventoryService) GetItem(id string) (*ItemView, error) {
	row, err := s.items.GetItem(id)
	if err != nil {
		return nil, err
	}
	return s.reconcileRow(row)
}

// ListItems returns all stored items reconciled against the active
// schema. Rows whose payload cannot be decoded are skipped, not fatal;
// one bad row must never hide the rest of the inventory.
func (s *InventoryService) ListItems() ([]*ItemView, error) {
	rows, err := s.items.ListItems()
	if err != nil {
		return nil, err
	}
	views := make([]*ItemView, 0, len(rows))
	for i := range rows {
		view, err := s.reconcileRow(&rows[i])
		if err != nil {
			s.log.Warn("skipping unreadable item row",
				zap.String("id", rows[i].ID), zap.Error(err))
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateItemField changes a single field on an item and persists the
// result.
func (s *InventoryService) UpdateItemField(ctx context.Context, id, field string, value any) (*domain.Item, error) {
	row, err := s.items.GetItem(id)
	if err != nil {
		return nil, err
	}
	item, err := domain.FromStored(row)
	if err != nil {
		return nil, fmt.Errorf("decode item %s: %w", id, err)
	}
	updated, err := domain.UpdateField(item, s.registry.ActiveFields(), field, value)
	if err != nil {
		return nil, err
	}
	stored, err := domain.ToStored(updated, row.InventoryType)
	if err != nil {
		return nil, err
	}
	stored.CreatedAt = row.CreatedAt
	if err := s.items.SaveItem(stored); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	s.emitter.Emit(ctx, "inventory:changed", id)
	return updated, nil
}

// DeleteItem removes one item by id.
func (s *InventoryService) DeleteItem(ctx context.Context, id string) error {
	if err := s.items.DeleteItem(id); err != nil {
		return err
	}
	s.log.Info("item deleted", zap.String("id", id))
	s.emitter.Emit(ctx, "inventory:changed", id)
	return nil
}

// SearchItems returns the reconciled items whose text fields contain
// query, case-insensitively. An empty query returns everything.
func (s *InventoryService) SearchItems(query string) ([]*ItemView, error) {
	views, err := s.ListItems()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return views, nil
	}
	items := make([]*domain.Item, len(views))
	byID := make(map[string]*ItemView, len(views))
	for i, v := range views {
		items[i] = v.Item
		byID[v.ID] = v
	}
	matched := domain.Search(items, s.registry.ActiveFields(), query)
	results := make([]*ItemView, 0, len(matched))
	for _, m := range matched {
		results = append(results, byID[m.ID])
	}
	return results, nil
}

// TotalValue sums price times quantity over every readable item.
func (s *InventoryService) TotalValue() (float64, error) {
	views, err := s.ListItems()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range views {
		total += domain.TotalValue(v.Item)
	}
	return total, nil
}

// ── JSON export / import ───────────────────────────────────

// ExportJSON writes every stored item row to path as indented JSON and
// returns the number of rows written.
func (s *InventoryService) ExportJSON(path string) (int, error) {
	rows, err := s.items.ListItems()
	if err != nil {
		return 0, err
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	s.log.Info("exported items", zap.Int("count", len(rows)), zap.String("path", path))
	return len(rows), nil
}

// ImportJSON reads item rows previously written by ExportJSON and
// upserts them by id. Returns the number of rows imported.
func (s *InventoryService) ImportJSON(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read export: %w", err)
	}
	var rows []domain.StoredItem
	if err := json.Unmarshal(data, &rows); err != nil {
		return 0, fmt.Errorf("parse export: %w", err)
	}
	imported := 0
	for i := range rows {
		if err := s.items.SaveItem(&rows[i]); err != nil {
			s.log.Warn("skipping row on import",
				zap.String("id", rows[i].ID), zap.Error(err))
			continue
		}
		imported++
	}
	s.log.Info("imported items", zap.Int("count", imported), zap.String("path", path))
	s.emitter.Emit(ctx, "inventory:changed", "")
	return imported, nil
}

func (s *InventoryService) reconcileRow(row *domain.StoredItem) (*ItemView, error) {
	item, err := domain.FromStored(row)
	if err != nil {
		return nil, err
	}
	values, defaulted := domain.Reconcile(s.registry.ActiveFields(), item.Values)
	item.Values = values
	return &ItemView{Item: item, DefaultedFields: defaulted}, nil
}
