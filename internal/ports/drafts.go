package ports

import (
	"time"

	"scrivo/internal/domain"
)

// DraftKey addresses one locally stored draft. All three parts take
// part in the key so switching accounts or repositories never exposes
// another session's drafts.
type DraftKey struct {
	Account    string
	Repository string
	Path       string
}

// Draft is a locally persisted snapshot of in-progress edits
type Draft struct {
	Meta    domain.PostMeta
	Body    string
	SavedAt time.Time
}

// DraftStore defines the interface for client-local draft persistence.
// Drafts survive process restarts; there is at most one per key.
type DraftStore interface {
	// Save overwrites the draft at key with a fresh SavedAt timestamp.
	// A storage quota failure surfaces as application.ErrStorageFull.
	Save(key DraftKey, meta domain.PostMeta, body string) error

	// Load returns the draft at key, or ok=false when absent. A
	// corrupted record is deleted and reported as
	// application.ErrDraftCorrupted; callers treat that as "no draft"
	// after surfacing it once.
	Load(key DraftKey) (Draft, bool, error)

	// Clear removes the draft at key; clearing an absent key is not
	// an error
	Clear(key DraftKey) error

	// List returns the keys of every stored draft for one
	// account/repository pair
	List(account, repository string) ([]DraftKey, error)

	Close() error
}
