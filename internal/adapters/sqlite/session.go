package sqlite

import (
	"database/sql"

	"scrivo/internal/ports"
)

// Sessions exposes the session-record half of the store
type Sessions struct {
	store *Store
}

// Sessions returns the store's ports.SessionStore view
func (s *Store) Sessions() *Sessions {
	return &Sessions{store: s}
}

// Ensure Sessions implements SessionStore
var _ ports.SessionStore = (*Sessions)(nil)

// Save stores the session record, replacing any previous one
func (s *Sessions) Save(rec ports.SessionRecord) error {
	_, err := s.store.db.Exec(`
		INSERT OR REPLACE INTO session (id, account, repository, token)
		VALUES (1, ?, ?, ?)
	`, rec.Account, rec.Repository, rec.Token)
	return mapStorageErr(err)
}

// Load returns the stored record, or ok=false when signed out
func (s *Sessions) Load() (ports.SessionRecord, bool, error) {
	var rec ports.SessionRecord
	err := s.store.db.QueryRow(`
		SELECT account, repository, token FROM session WHERE id = 1
	`).Scan(&rec.Account, &rec.Repository, &rec.Token)

	if err == sql.ErrNoRows {
		return ports.SessionRecord{}, false, nil
	}
	if err != nil {
		return ports.SessionRecord{}, false, err
	}
	return rec, true, nil
}

// Clear removes the stored record; idempotent
func (s *Sessions) Clear() error {
	_, err := s.store.db.Exec(`DELETE FROM session WHERE id = 1`)
	return err
}
