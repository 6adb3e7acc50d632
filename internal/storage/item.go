package storage

import (
	"database/sql"
	"fmt"
	"time"

	"inventory/internal/domain"
)

// ItemStore implements domain.ItemStore using SQLite.
type ItemStore struct {
	db *DB
}

// NewItemStore creates a new ItemStore.
func NewItemStore(db *DB) *ItemStore {
	return &ItemStore{db: db}
}

// SaveItem inserts or replaces an item row, keyed by id.
func (s *ItemStore) SaveItem(item *domain.StoredItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}
	_, err := s.db.conn.Exec(
		`INSERT OR REPLACE INTO items (id, inventory_type, created_at, updated_at, data_json)
		 VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.InventoryType, item.CreatedAt, item.UpdatedAt, item.DataJSON,
	)
	return err
}

// GetItem fetches one item row by id.
func (s *ItemStore) GetItem(id string) (*domain.StoredItem, error) {
	item := &domain.StoredItem{}
	err := s.db.conn.QueryRow(
		`SELECT id, inventory_type, created_at, updated_at, data_json
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.InventoryType, &item.CreatedAt, &item.UpdatedAt, &item.DataJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return item, err
}

// ListItems returns all item rows in creation order.
func (s *ItemStore) ListItems() ([]domain.StoredItem, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, inventory_type, created_at, updated_at, data_json
		 FROM items ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StoredItem
	for rows.Next() {
		item := domain.StoredItem{}
		if err := rows.Scan(&item.ID, &item.InventoryType, &item.CreatedAt, &item.UpdatedAt, &item.DataJSON); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// DeleteItem removes one item row by id.
func (s *ItemStore) DeleteItem(id string) error {
	res, err := s.db.conn.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ClearItems removes every item row.
func (s *ItemStore) ClearItems() error {
	_, err := s.db.conn.Exec(`DELETE FROM items`)
	return err
}

var _ domain.ItemStore = (*ItemStore)(nil)
