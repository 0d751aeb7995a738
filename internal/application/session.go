package application

import (
	"context"
	"fmt"

	"scrivo/internal/ports"
)

// Session identifies the account/repository pair being edited and the
// credential authorizing every remote call. It lives for the process
// lifetime; only the ports.SessionRecord shape is ever persisted.
type Session struct {
	Account    string
	Repository string
	Token      string
}

// NewSession builds a Session from a persisted record
func NewSession(rec ports.SessionRecord) Session {
	return Session{
		Account:    rec.Account,
		Repository: rec.Repository,
		Token:      rec.Token,
	}
}

// Record returns the persistable shape of the session
func (s Session) Record() ports.SessionRecord {
	return ports.SessionRecord{
		Account:    s.Account,
		Repository: s.Repository,
		Token:      s.Token,
	}
}

// DraftKey addresses this session's draft for one path
func (s Session) DraftKey(path string) ports.DraftKey {
	return ports.DraftKey{
		Account:    s.Account,
		Repository: s.Repository,
		Path:       path,
	}
}

// Probe verifies the session credential by listing the repository
// content; sign-in succeeds only when the listing does.
func Probe(ctx context.Context, repo ports.ContentRepository) error {
	if _, err := repo.List(ctx); err != nil {
		return fmt.Errorf("login probe failed: %w", err)
	}
	return nil
}
