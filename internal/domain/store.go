package domain

import (
	"encoding/json"
	"time"
)

// ── Storage contracts ───────────────────────────────────────
// Items are persisted as opaque JSON blobs so the stored shape
// survives inventory-type switches; reading a blob with fewer or more
// fields than the active schema is reconciled on read, never an error.

// StoredItem is the row shape the persistence gateway works with.
type StoredItem struct {
	ID            string    `json:"id"`
	InventoryType string    `json:"inventoryType"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	DataJSON      string    `json:"dataJson"`
}

// ItemStore manages durable item rows keyed by id.
type ItemStore interface {
	SaveItem(item *StoredItem) error
	GetItem(id string) (*StoredItem, error)
	ListItems() ([]StoredItem, error)
	DeleteItem(id string) error
	ClearItems() error
}

// ToStored serializes an Item for persistence under the given
// inventory type.
func ToStored(item *Item, inventoryType string) (*StoredItem, error) {
	data, err := json.Marshal(item.Values)
	if err != nil {
		return nil, err
	}
	return &StoredItem{
		ID:            item.ID,
		InventoryType: inventoryType,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
		DataJSON:      string(data),
	}, nil
}

// FromStored deserializes a stored row back into an Item. The values
// are returned as stored; reconciliation against the active schema is
// the caller's concern.
func FromStored(row *StoredItem) (*Item, error) {
	values := make(map[string]any)
	if err := json.Unmarshal([]byte(row.DataJSON), &values); err != nil {
		return nil, err
	}
	return &Item{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Values:    values,
	}, nil
}
