package storage_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"inventory/internal/domain"
	"inventory/internal/importer"
	"inventory/internal/storage"
)

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "inventory.db"), dir)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─────────────────────────────────────────────────────────────
// ItemStore
// ─────────────────────────────────────────────────────────────

func TestItemStore_SaveAndGet(t *testing.T) {
	store := storage.NewItemStore(openTestDB(t))

	row := &domain.StoredItem{
		ID:            "item-1",
		InventoryType: "warehouse",
		DataJSON:      `{"name":"Sword","quantity":2}`,
	}
	if err := store.SaveItem(row); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}
	if row.CreatedAt.IsZero() {
		t.Error("SaveItem must fill timestamps")
	}

	got, err := store.GetItem("item-1")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.DataJSON != row.DataJSON || got.InventoryType != "warehouse" {
		t.Errorf("got %+v", got)
	}
}

func TestItemStore_SaveReplacesByID(t *testing.T) {
	store := storage.NewItemStore(openTestDB(t))

	first := &domain.StoredItem{ID: "item-1", DataJSON: `{"v":1}`}
	if err := store.SaveItem(first); err != nil {
		t.Fatal(err)
	}
	second := &domain.StoredItem{
		ID:        "item-1",
		DataJSON:  `{"v":2}`,
		CreatedAt: first.CreatedAt,
		UpdatedAt: time.Now(),
	}
	if err := store.SaveItem(second); err != nil {
		t.Fatal(err)
	}

	items, err := store.ListItems()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 row after replace, got %d", len(items))
	}
	if items[0].DataJSON != `{"v":2}` {
		t.Errorf("data = %s", items[0].DataJSON)
	}
}

func TestItemStore_ListOrder(t *testing.T) {
	store := storage.NewItemStore(openTestDB(t))

	base := time.Now()
	for i, id := range []string{"c", "a", "b"} {
		err := store.SaveItem(&domain.StoredItem{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			UpdatedAt: base,
			DataJSON:  "{}",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	items, err := store.ListItems()
	if err != nil {
		t.Fatal(err)
	}
	if items[0].ID != "c" || items[1].ID != "a" || items[2].ID != "b" {
		t.Errorf("expected creation order, got %v %v %v", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestItemStore_DeleteAndNotFound(t *testing.T) {
	store := storage.NewItemStore(openTestDB(t))

	if err := store.SaveItem(&domain.StoredItem{ID: "item-1", DataJSON: "{}"}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteItem("item-1"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	if _, err := store.GetItem("item-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetItem after delete: %v", err)
	}
	if err := store.DeleteItem("item-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("double delete: %v", err)
	}
}

func TestItemStore_Clear(t *testing.T) {
	store := storage.NewItemStore(openTestDB(t))

	for _, id := range []string{"a", "b"} {
		if err := store.SaveItem(&domain.StoredItem{ID: id, DataJSON: "{}"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.ClearItems(); err != nil {
		t.Fatal(err)
	}
	items, err := store.ListItems()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty store, got %d rows", len(items))
	}
}

// ─────────────────────────────────────────────────────────────
// SettingsStore
// ─────────────────────────────────────────────────────────────

func TestSettingsStore(t *testing.T) {
	store := storage.NewSettingsStore(openTestDB(t))

	typ, err := store.InventoryType()
	if err != nil {
		t.Fatal(err)
	}
	if typ != "" {
		t.Errorf("fresh store should have no type, got %q", typ)
	}

	if err := store.SetInventoryType("library"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetInventoryType("retail"); err != nil {
		t.Fatal(err)
	}

	typ, err = store.InventoryType()
	if err != nil {
		t.Fatal(err)
	}
	if typ != "retail" {
		t.Errorf("expected last write to win, got %q", typ)
	}
}

// ─────────────────────────────────────────────────────────────
// ImportRunStore
// ─────────────────────────────────────────────────────────────

func TestImportRunStore(t *testing.T) {
	store := storage.NewImportRunStore(openTestDB(t))

	base := time.Now().Add(-time.Minute)
	runs := []importer.ImportRun{
		{ID: "run-1", SourceFile: "a.csv", Status: "previewed", RowsParsed: 3, StartedAt: base, FinishedAt: base},
		{ID: "run-2", SourceFile: "a.csv", Status: "committed", RowsParsed: 3, RowsAccepted: 2, RowsRejected: 1,
			StartedAt: base.Add(10 * time.Second), FinishedAt: base.Add(11 * time.Second)},
	}
	for i := range runs {
		if err := store.CreateRun(&runs[i]); err != nil {
			t.Fatalf("CreateRun: %v", err)
		}
	}

	got, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(got))
	}
	if got[0].ID != "run-2" {
		t.Errorf("expected newest first, got %q", got[0].ID)
	}
	if got[0].RowsAccepted != 2 || got[0].RowsRejected != 1 {
		t.Errorf("counts lost: %+v", got[0])
	}

	if limited, _ := store.ListRuns(1); len(limited) != 1 {
		t.Errorf("limit ignored, got %d", len(limited))
	}
}
