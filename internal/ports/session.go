package ports

// SessionRecord is the persisted identity of a signed-in session:
// just enough to resume automatically on next start.
type SessionRecord struct {
	Account    string
	Repository string
	Token      string // personal access token
}

// SessionStore defines the interface for persisting the session record
type SessionStore interface {
	// Save stores the record, replacing any previous one
	Save(rec SessionRecord) error

	// Load returns the stored record, or ok=false when signed out
	Load() (SessionRecord, bool, error)

	// Clear removes the stored record; idempotent
	Clear() error
}
