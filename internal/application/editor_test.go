package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

// fakeRepo is an in-memory ContentRepository that records every call
type fakeRepo struct {
	files map[string]ports.RemoteFile
	calls []string
	rev   int
	fail  map[string]error // op name -> forced error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		files: make(map[string]ports.RemoteFile),
		fail:  make(map[string]error),
	}
}

func (r *fakeRepo) put(path, content string) string {
	r.rev++
	sha := fmt.Sprintf("sha-%d", r.rev)
	r.files[path] = ports.RemoteFile{Content: content, SHA: sha}
	return sha
}

func (r *fakeRepo) List(ctx context.Context) ([]ports.FileRef, error) {
	r.calls = append(r.calls, "list")
	if err := r.fail["list"]; err != nil {
		return nil, err
	}
	var refs []ports.FileRef
	for p, f := range r.files {
		refs = append(refs, ports.FileRef{Name: p, Path: p, SHA: f.SHA})
	}
	return refs, nil
}

func (r *fakeRepo) Read(ctx context.Context, path string) (*ports.RemoteFile, error) {
	r.calls = append(r.calls, "read "+path)
	if err := r.fail["read"]; err != nil {
		return nil, err
	}
	f, ok := r.files[path]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (r *fakeRepo) Create(ctx context.Context, path, text string) (string, error) {
	r.calls = append(r.calls, "create "+path)
	if err := r.fail["create"]; err != nil {
		return "", err
	}
	if _, exists := r.files[path]; exists {
		return "", ErrConflict
	}
	return r.put(path, text), nil
}

func (r *fakeRepo) Update(ctx context.Context, path, text, sha string) (string, error) {
	r.calls = append(r.calls, "update "+path)
	if err := r.fail["update"]; err != nil {
		return "", err
	}
	f, ok := r.files[path]
	if !ok {
		return "", ErrNotFound
	}
	if f.SHA != sha {
		return "", ErrConflict
	}
	return r.put(path, text), nil
}

func (r *fakeRepo) Delete(ctx context.Context, path, sha string) error {
	r.calls = append(r.calls, "delete "+path)
	if err := r.fail["delete"]; err != nil {
		return err
	}
	f, ok := r.files[path]
	if !ok {
		return ErrNotFound
	}
	if f.SHA != sha {
		return ErrConflict
	}
	delete(r.files, path)
	return nil
}

// fakeDrafts is an in-memory DraftStore
type fakeDrafts struct {
	drafts   map[ports.DraftKey]ports.Draft
	failSave error
	loadErr  error
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: make(map[ports.DraftKey]ports.Draft)}
}

func (d *fakeDrafts) Save(key ports.DraftKey, meta domain.PostMeta, body string) error {
	if d.failSave != nil {
		return d.failSave
	}
	d.drafts[key] = ports.Draft{Meta: meta, Body: body, SavedAt: time.Now()}
	return nil
}

func (d *fakeDrafts) Load(key ports.DraftKey) (ports.Draft, bool, error) {
	if d.loadErr != nil {
		return ports.Draft{}, false, d.loadErr
	}
	draft, ok := d.drafts[key]
	return draft, ok, nil
}

func (d *fakeDrafts) Clear(key ports.DraftKey) error {
	delete(d.drafts, key)
	return nil
}

func (d *fakeDrafts) List(account, repository string) ([]ports.DraftKey, error) {
	var keys []ports.DraftKey
	for k := range d.drafts {
		if k.Account == account && k.Repository == repository {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (d *fakeDrafts) Close() error { return nil }

// fakeNotifier records status messages
type fakeNotifier struct {
	messages []string
	errors   []string
}

func (n *fakeNotifier) Notify(message string, isError bool) {
	if isError {
		n.errors = append(n.errors, message)
	} else {
		n.messages = append(n.messages, message)
	}
}

// fakePrompter answers every confirm with a fixed choice
type fakePrompter struct {
	answer bool
	asked  []string
}

func (p *fakePrompter) Confirm(message string) bool {
	p.asked = append(p.asked, message)
	return p.answer
}

type editorFixture struct {
	editor  *Editor
	repo    *fakeRepo
	drafts  *fakeDrafts
	notify  *fakeNotifier
	prompt  *fakePrompter
	session Session
}

func newEditorFixture(t *testing.T) *editorFixture {
	t.Helper()
	session := Session{Account: "ada", Repository: "blog", Token: "tok"}
	repo := newFakeRepo()
	drafts := newFakeDrafts()
	notify := &fakeNotifier{}
	prompt := &fakePrompter{}
	return &editorFixture{
		editor:  NewEditor(session, repo, drafts, notify, prompt, "content/posts"),
		repo:    repo,
		drafts:  drafts,
		notify:  notify,
		prompt:  prompt,
		session: session,
	}
}

func (f *editorFixture) seedRemote(path string, meta domain.PostMeta, body string) string {
	return f.repo.put(path, domain.SerializeDocument(meta, body))
}

func TestEditorOpen_NoDraft(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/a.md", domain.PostMeta{Title: "A", Published: "2024-01-01"}, "remote body")

	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}

	if len(f.prompt.asked) != 0 {
		t.Errorf("expected no prompt, got %v", f.prompt.asked)
	}
	doc := f.editor.Document()
	if doc.Meta.Title != "A" || doc.Body != "remote body" {
		t.Errorf("document = %+v, want remote content", doc)
	}
	if got := f.editor.State(); got != FileClean {
		t.Errorf("state = %v, want clean", got)
	}
}

func TestEditorOpen_IdenticalDraftDiscardedSilently(t *testing.T) {
	f := newEditorFixture(t)
	meta := domain.PostMeta{Title: "A", Published: "2024-01-01"}
	f.seedRemote("content/posts/a.md", meta, "same body")
	key := f.session.DraftKey("content/posts/a.md")
	f.drafts.drafts[key] = ports.Draft{Meta: meta, Body: "same body", SavedAt: time.Now()}

	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}

	if len(f.prompt.asked) != 0 {
		t.Errorf("expected no prompt for identical draft, got %v", f.prompt.asked)
	}
	if _, ok := f.drafts.drafts[key]; ok {
		t.Error("identical draft should have been discarded")
	}
	if doc := f.editor.Document(); doc.Body != "same body" {
		t.Errorf("body = %q, want remote content", doc.Body)
	}
}

func TestEditorOpen_DivergingDraftDeclined(t *testing.T) {
	f := newEditorFixture(t)
	meta := domain.PostMeta{Title: "A"}
	f.seedRemote("content/posts/a.md", meta, "remote body")
	key := f.session.DraftKey("content/posts/a.md")
	f.drafts.drafts[key] = ports.Draft{Meta: meta, Body: "draft body", SavedAt: time.Now()}
	f.prompt.answer = false

	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}

	if len(f.prompt.asked) != 1 {
		t.Fatalf("expected exactly one prompt, got %d", len(f.prompt.asked))
	}
	if _, ok := f.drafts.drafts[key]; ok {
		t.Error("declined draft should have been discarded")
	}
	if doc := f.editor.Document(); doc.Body != "remote body" {
		t.Errorf("body = %q, want remote content after decline", doc.Body)
	}
	if got := f.editor.State(); got != FileClean {
		t.Errorf("state = %v, want clean", got)
	}
}

func TestEditorOpen_DivergingDraftAccepted(t *testing.T) {
	f := newEditorFixture(t)
	meta := domain.PostMeta{Title: "A"}
	f.seedRemote("content/posts/a.md", meta, "remote body")
	key := f.session.DraftKey("content/posts/a.md")
	f.drafts.drafts[key] = ports.Draft{Meta: meta, Body: "draft body", SavedAt: time.Now()}
	f.prompt.answer = true

	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}

	if doc := f.editor.Document(); doc.Body != "draft body" {
		t.Errorf("body = %q, want draft content after accept", doc.Body)
	}
	if got := f.editor.State(); got != FileDirty {
		t.Errorf("state = %v, want dirty after loading a draft", got)
	}
}

func TestEditorOpen_CorruptedDraftTreatedAsAbsent(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/a.md", domain.PostMeta{Title: "A"}, "remote body")
	f.drafts.loadErr = ErrDraftCorrupted

	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}

	if len(f.prompt.asked) != 0 {
		t.Error("corrupted draft must not prompt")
	}
	if len(f.notify.errors) == 0 {
		t.Error("corrupted draft should be surfaced once")
	}
	if doc := f.editor.Document(); doc.Body != "remote body" {
		t.Errorf("body = %q, want remote content", doc.Body)
	}
}

func TestEditorFlush_DirtyToCleanAndBack(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/a.md", domain.PostMeta{Title: "A"}, "v1")
	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}

	doc := f.editor.Document()
	doc.Body = "v2"
	f.editor.Apply(doc)
	if got := f.editor.State(); got != FileDirty {
		t.Fatalf("state after edit = %v, want dirty", got)
	}

	f.editor.Flush()
	if got := f.editor.State(); got != FileClean {
		t.Errorf("state after flush = %v, want clean", got)
	}
	key := f.session.DraftKey("content/posts/a.md")
	draft, ok := f.drafts.drafts[key]
	if !ok {
		t.Fatal("flush should have written a draft")
	}
	if draft.Body != "v2" || draft.Meta.Title != "A" {
		t.Errorf("draft = %+v, want in-memory state", draft)
	}

	doc.Body = "v3"
	f.editor.Apply(doc)
	if got := f.editor.State(); got != FileDirty {
		t.Errorf("state after second edit = %v, want dirty again", got)
	}
}

func TestEditorFlush_NoopWhenClean(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/a.md", domain.PostMeta{Title: "A"}, "v1")
	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}

	f.editor.Flush()
	if len(f.drafts.drafts) != 0 {
		t.Error("flush of a clean file must not write a draft")
	}
}

func TestEditorFlush_FailureReportedNotPropagated(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/a.md", domain.PostMeta{Title: "A"}, "v1")
	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}
	f.editor.Apply(Document{Meta: domain.PostMeta{Title: "A"}, Body: "v2"})
	f.drafts.failSave = ErrStorageFull

	f.editor.Flush()

	if len(f.notify.errors) == 0 {
		t.Error("storage-full failure should be surfaced to the user")
	}
	if got := f.editor.State(); got != FileDirty {
		t.Errorf("state = %v, failed flush must leave the file dirty", got)
	}
}

func TestEditorOpen_FlushesPreviousFileFirst(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/a.md", domain.PostMeta{Title: "A"}, "a body")
	f.seedRemote("content/posts/b.md", domain.PostMeta{Title: "B"}, "b body")
	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open a: %v", err)
	}
	f.editor.Apply(Document{Meta: domain.PostMeta{Title: "A"}, Body: "a edited"})

	if err := f.editor.Open(context.Background(), "content/posts/b.md"); err != nil {
		t.Fatalf("open b: %v", err)
	}

	draft, ok := f.drafts.drafts[f.session.DraftKey("content/posts/a.md")]
	if !ok {
		t.Fatal("switching files must flush the previous file's draft under its own key")
	}
	if draft.Body != "a edited" {
		t.Errorf("draft body = %q, want %q", draft.Body, "a edited")
	}
	if _, ok := f.drafts.drafts[f.session.DraftKey("content/posts/b.md")]; ok {
		t.Error("no draft may be written under the new file's key")
	}
}

func TestEditorNewThenSave_CallsCreateNotUpdate(t *testing.T) {
	f := newEditorFixture(t)
	if err := f.editor.New("My First Post"); err != nil {
		t.Fatalf("new: %v", err)
	}

	active, ok := f.editor.Active()
	if !ok {
		t.Fatal("no active file after New")
	}
	if active.Path != "content/posts/my-first-post.md" {
		t.Errorf("path = %q, want normalized path", active.Path)
	}
	if !active.IsNew || active.SHA != "" {
		t.Errorf("active = %+v, want new file without version token", active)
	}
	if got := f.editor.State(); got != FileDirty {
		t.Errorf("state = %v, new file must start dirty", got)
	}
	if doc := f.editor.Document(); doc.Meta.Title != "My First Post" {
		t.Errorf("title = %q, want raw input", doc.Meta.Title)
	}

	if err := f.editor.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}

	var sawCreate, sawUpdate bool
	for _, call := range f.repo.calls {
		switch call {
		case "create content/posts/my-first-post.md":
			sawCreate = true
		case "update content/posts/my-first-post.md":
			sawUpdate = true
		}
	}
	if !sawCreate || sawUpdate {
		t.Errorf("calls = %v, want create and no update", f.repo.calls)
	}

	active, _ = f.editor.Active()
	if active.IsNew || active.SHA == "" {
		t.Errorf("active after save = %+v, want persisted with version token", active)
	}
	if _, ok := f.drafts.drafts[f.session.DraftKey(active.Path)]; ok {
		t.Error("save must clear the draft")
	}
	if got := f.editor.State(); got != FileClean {
		t.Errorf("state after save = %v, want clean", got)
	}
}

func TestEditorSave_SecondSaveUpdates(t *testing.T) {
	f := newEditorFixture(t)
	if err := f.editor.New("post"); err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := f.editor.Save(context.Background()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	f.editor.Apply(Document{Meta: domain.PostMeta{Title: "post"}, Body: "more"})
	if err := f.editor.Save(context.Background()); err != nil {
		t.Fatalf("second save: %v", err)
	}

	last := f.repo.calls[len(f.repo.calls)-1]
	if last != "update content/posts/post.md" {
		t.Errorf("last call = %q, want update", last)
	}
}

func TestEditorDelete_NewFileIsLocalCancel(t *testing.T) {
	f := newEditorFixture(t)
	if err := f.editor.New("draft post"); err != nil {
		t.Fatalf("new: %v", err)
	}
	f.editor.Flush() // leave a draft behind

	if err := f.editor.Delete(context.Background()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(f.repo.calls) != 0 {
		t.Errorf("deleting a never-persisted file must not touch the remote, got %v", f.repo.calls)
	}
	if len(f.prompt.asked) != 0 {
		t.Error("local cancel needs no confirmation")
	}
	if len(f.drafts.drafts) != 0 {
		t.Error("local cancel must clear the draft")
	}
	if _, ok := f.editor.Active(); ok {
		t.Error("active file should be unloaded")
	}
	if got := f.editor.State(); got != FileUnloaded {
		t.Errorf("state = %v, want unloaded", got)
	}
}

func TestEditorDelete_ExistingRequiresConfirm(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/a.md", domain.PostMeta{Title: "A"}, "body")
	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}

	f.prompt.answer = false
	if err := f.editor.Delete(context.Background()); err != nil {
		t.Fatalf("declined delete: %v", err)
	}
	if _, ok := f.repo.files["content/posts/a.md"]; !ok {
		t.Fatal("declined delete must leave the remote file")
	}
	if _, ok := f.editor.Active(); !ok {
		t.Error("declined delete must keep the file open")
	}

	f.prompt.answer = true
	if err := f.editor.Delete(context.Background()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := f.repo.files["content/posts/a.md"]; ok {
		t.Error("confirmed delete must remove the remote file")
	}
	if got := f.editor.State(); got != FileUnloaded {
		t.Errorf("state = %v, want unloaded after deleting the active file", got)
	}
}

func TestEditorRename_CreateBeforeDelete(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/old.md", domain.PostMeta{Title: "Old"}, "body")
	if err := f.editor.Open(context.Background(), "content/posts/old.md"); err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := f.editor.Rename(context.Background(), "New Name"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	want := []string{
		"read content/posts/old.md",
		"create content/posts/new-name.md",
		"delete content/posts/old.md",
	}
	if len(f.repo.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", f.repo.calls, want)
	}
	for i := range want {
		if f.repo.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", f.repo.calls, want)
		}
	}

	active, _ := f.editor.Active()
	if active.Path != "content/posts/new-name.md" || active.SHA == "" {
		t.Errorf("active = %+v, want new path with version token", active)
	}
}

func TestEditorRename_NewFileRejected(t *testing.T) {
	f := newEditorFixture(t)
	if err := f.editor.New("fresh"); err != nil {
		t.Fatalf("new: %v", err)
	}

	err := f.editor.Rename(context.Background(), "other")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(f.repo.calls) != 0 {
		t.Errorf("no remote calls expected, got %v", f.repo.calls)
	}
}

func TestEditorRename_DeletePhaseFailure(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/old.md", domain.PostMeta{Title: "Old"}, "body")
	if err := f.editor.Open(context.Background(), "content/posts/old.md"); err != nil {
		t.Fatalf("open: %v", err)
	}
	f.repo.fail["delete"] = &TransportError{Status: 500, Message: "boom"}

	err := f.editor.Rename(context.Background(), "newer")
	var ri *RenameIncompleteError
	if !errors.As(err, &ri) {
		t.Fatalf("err = %v, want RenameIncompleteError", err)
	}

	// The editor adopts the created file so the user's content is not
	// stranded, and the failure is surfaced explicitly.
	active, _ := f.editor.Active()
	if active.Path != "content/posts/newer.md" {
		t.Errorf("active path = %q, want new path", active.Path)
	}
	if len(f.notify.errors) == 0 {
		t.Error("incomplete rename must be surfaced to the user")
	}
}

func TestEditorClose_FlushesAndUnloads(t *testing.T) {
	f := newEditorFixture(t)
	f.seedRemote("content/posts/a.md", domain.PostMeta{Title: "A"}, "v1")
	if err := f.editor.Open(context.Background(), "content/posts/a.md"); err != nil {
		t.Fatalf("open: %v", err)
	}
	f.editor.Apply(Document{Meta: domain.PostMeta{Title: "A"}, Body: "edited"})

	f.editor.Close()

	if _, ok := f.drafts.drafts[f.session.DraftKey("content/posts/a.md")]; !ok {
		t.Error("close must flush the pending draft")
	}
	if got := f.editor.State(); got != FileUnloaded {
		t.Errorf("state = %v, want unloaded", got)
	}
}
