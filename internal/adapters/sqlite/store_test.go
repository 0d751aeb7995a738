package sqlite

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"scrivo/internal/application"
	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "scrivo.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDraftSaveLoadClear(t *testing.T) {
	store := newTestStore(t)
	key := ports.DraftKey{Account: "ada", Repository: "blog", Path: "content/posts/a.md"}
	meta := domain.PostMeta{
		Title:     "A",
		Published: "2024-01-01",
		Tags:      []string{"go", "sql"},
	}

	if err := store.Save(key, meta, "draft body"); err != nil {
		t.Fatalf("save: %v", err)
	}

	draft, ok, err := store.Load(key)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(draft.Meta, meta) {
		t.Errorf("meta = %+v, want %+v", draft.Meta, meta)
	}
	if draft.Body != "draft body" {
		t.Errorf("body = %q", draft.Body)
	}
	if draft.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}

	if err := store.Clear(key); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Load(key); ok {
		t.Error("draft still present after clear")
	}

	// Clearing an absent key is not an error.
	if err := store.Clear(key); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestDraftSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	key := ports.DraftKey{Account: "ada", Repository: "blog", Path: "p.md"}

	if err := store.Save(key, domain.PostMeta{Title: "v1"}, "b1"); err != nil {
		t.Fatalf("save v1: %v", err)
	}
	if err := store.Save(key, domain.PostMeta{Title: "v2"}, "b2"); err != nil {
		t.Fatalf("save v2: %v", err)
	}

	draft, ok, err := store.Load(key)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if draft.Meta.Title != "v2" || draft.Body != "b2" {
		t.Errorf("draft = %+v, want the overwrite", draft)
	}
}

func TestDraftKeysAreScopedToSession(t *testing.T) {
	store := newTestStore(t)
	path := "content/posts/a.md"
	keyA := ports.DraftKey{Account: "ada", Repository: "blog", Path: path}
	keyB := ports.DraftKey{Account: "bob", Repository: "blog", Path: path}
	keyC := ports.DraftKey{Account: "ada", Repository: "notes", Path: path}

	if err := store.Save(keyA, domain.PostMeta{Title: "ada's"}, "a"); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, ok, _ := store.Load(keyB); ok {
		t.Error("another account must not see the draft")
	}
	if _, ok, _ := store.Load(keyC); ok {
		t.Error("another repository must not see the draft")
	}
}

func TestDraftCorruptedRowDeletedAndReported(t *testing.T) {
	store := newTestStore(t)
	key := ports.DraftKey{Account: "ada", Repository: "blog", Path: "p.md"}

	if _, err := store.db.Exec(`
		INSERT INTO drafts (account, repository, path, meta, body, saved_at)
		VALUES (?, ?, ?, 'not json', 'body', 0)
	`, key.Account, key.Repository, key.Path); err != nil {
		t.Fatalf("seed corrupted row: %v", err)
	}

	_, ok, err := store.Load(key)
	if ok {
		t.Error("corrupted draft must not be returned")
	}
	if !errors.Is(err, application.ErrDraftCorrupted) {
		t.Errorf("err = %v, want ErrDraftCorrupted", err)
	}

	// The corrupted row is gone; the next load is a plain miss.
	if _, ok, err := store.Load(key); ok || err != nil {
		t.Errorf("after cleanup: ok=%v err=%v, want absent with no error", ok, err)
	}
}

func TestDraftList(t *testing.T) {
	store := newTestStore(t)
	for _, p := range []string{"b.md", "a.md"} {
		key := ports.DraftKey{Account: "ada", Repository: "blog", Path: p}
		if err := store.Save(key, domain.PostMeta{Title: p}, "x"); err != nil {
			t.Fatalf("save %s: %v", p, err)
		}
	}
	other := ports.DraftKey{Account: "bob", Repository: "blog", Path: "c.md"}
	if err := store.Save(other, domain.PostMeta{}, "y"); err != nil {
		t.Fatalf("save other: %v", err)
	}

	keys, err := store.List("ada", "blog")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0].Path != "a.md" || keys[1].Path != "b.md" {
		t.Errorf("keys = %+v, want ada's two drafts sorted by path", keys)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	sessions := store.Sessions()

	if _, ok, err := sessions.Load(); ok || err != nil {
		t.Fatalf("fresh store: ok=%v err=%v, want signed out", ok, err)
	}

	rec := ports.SessionRecord{Account: "ada", Repository: "blog", Token: "tok"}
	if err := sessions.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := sessions.Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got != rec {
		t.Errorf("record = %+v, want %+v", got, rec)
	}

	if err := sessions.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := sessions.Load(); ok {
		t.Error("record still present after clear")
	}
	if err := sessions.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}
