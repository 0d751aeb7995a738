package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"scrivo/internal/application"
	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

// Ensure Store implements DraftStore
var _ ports.DraftStore = (*Store)(nil)

// draftMeta is the JSON shape metadata is stored under
type draftMeta struct {
	Title       string   `json:"title"`
	Published   string   `json:"published"`
	Updated     string   `json:"updated"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

// Save overwrites the draft at key with a fresh timestamp
func (s *Store) Save(key ports.DraftKey, meta domain.PostMeta, body string) error {
	encoded, err := json.Marshal(draftMeta{
		Title:       meta.Title,
		Published:   meta.Published,
		Updated:     meta.Updated,
		Description: meta.Description,
		Tags:        meta.Tags,
		Category:    meta.Category,
	})
	if err != nil {
		return fmt.Errorf("encoding draft metadata: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO drafts (account, repository, path, meta, body, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, key.Account, key.Repository, key.Path, string(encoded), body, time.Now().Unix())
	return mapStorageErr(err)
}

// Load returns the draft at key. A row whose metadata no longer
// deserializes is deleted and reported as corrupted; the caller then
// proceeds as if no draft existed.
func (s *Store) Load(key ports.DraftKey) (ports.Draft, bool, error) {
	var (
		metaJSON string
		body     string
		savedAt  int64
	)
	err := s.db.QueryRow(`
		SELECT meta, body, saved_at
		FROM drafts WHERE account = ? AND repository = ? AND path = ?
	`, key.Account, key.Repository, key.Path).Scan(&metaJSON, &body, &savedAt)

	if err == sql.ErrNoRows {
		return ports.Draft{}, false, nil
	}
	if err != nil {
		return ports.Draft{}, false, err
	}

	var meta draftMeta
	if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
		if clearErr := s.Clear(key); clearErr != nil {
			return ports.Draft{}, false, fmt.Errorf("%w (and could not delete it: %v)", application.ErrDraftCorrupted, clearErr)
		}
		return ports.Draft{}, false, application.ErrDraftCorrupted
	}

	return ports.Draft{
		Meta: domain.PostMeta{
			Title:       meta.Title,
			Published:   meta.Published,
			Updated:     meta.Updated,
			Description: meta.Description,
			Tags:        meta.Tags,
			Category:    meta.Category,
		},
		Body:    body,
		SavedAt: time.Unix(savedAt, 0),
	}, true, nil
}

// Clear removes the draft at key; absent keys are not an error
func (s *Store) Clear(key ports.DraftKey) error {
	_, err := s.db.Exec(`
		DELETE FROM drafts WHERE account = ? AND repository = ? AND path = ?
	`, key.Account, key.Repository, key.Path)
	return err
}

// List returns every draft key stored for one account/repository pair
func (s *Store) List(account, repository string) ([]ports.DraftKey, error) {
	rows, err := s.db.Query(`
		SELECT path FROM drafts WHERE account = ? AND repository = ? ORDER BY path
	`, account, repository)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []ports.DraftKey
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		keys = append(keys, ports.DraftKey{Account: account, Repository: repository, Path: path})
	}
	return keys, rows.Err()
}
