package storage

import "database/sql"

// SettingsStore persists simple key/value settings between sessions,
// most importantly the chosen inventory type.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a SettingsStore.
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

const settingInventoryType = "inventory_type"

// Get returns a setting's value, or "" when unset.
func (s *SettingsStore) Get(key string) (string, error) {
	var value string
	err := s.db.conn.QueryRow(
		`SELECT value FROM app_settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Set upserts a setting.
func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.conn.Exec(
		`INSERT INTO app_settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// InventoryType returns the persisted inventory type, or "" when the
// app has never chosen one.
func (s *SettingsStore) InventoryType() (string, error) {
	return s.Get(settingInventoryType)
}

// SetInventoryType persists the chosen inventory type so it survives
// restarts.
func (s *SettingsStore) SetInventoryType(typ string) error {
	return s.Set(settingInventoryType, typ)
}
