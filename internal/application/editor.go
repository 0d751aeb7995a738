package application

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

// FlushInterval is how often dirty state is snapshotted into the
// draft store.
const FlushInterval = 5 * time.Second

// FileState is the reconciliation state of the active file
type FileState int

const (
	// FileUnloaded means no file is open
	FileUnloaded FileState = iota
	// FileClean means the local draft is caught up with the in-memory
	// state (not necessarily the remote)
	FileClean
	// FileDirty means there are edits not yet flushed to the draft
	// store
	FileDirty
)

// String returns the state name
func (s FileState) String() string {
	switch s {
	case FileClean:
		return "clean"
	case FileDirty:
		return "dirty"
	default:
		return "unloaded"
	}
}

// ActiveFile is the identity of the single currently open document.
// IsNew is true exactly for files created locally that have never been
// written to the remote; such files hold no version token.
type ActiveFile struct {
	Path  string
	SHA   string
	IsNew bool
}

// Document is the editable content of the active file
type Document struct {
	Meta domain.PostMeta
	Body string
}

// Editor owns the active file's state machine: clean/dirty tracking,
// periodic draft snapshots, remote-vs-draft divergence detection on
// open, and the draft lifecycle. It also orchestrates the user-facing
// actions (open, create, save, delete, rename) against the remote.
//
// All methods serialize behind one mutex, so "flush the previous
// file's draft" strictly precedes "replace the active file" and a
// stale completion can never apply to state that has moved on.
type Editor struct {
	mu      sync.Mutex
	session Session
	repo    ports.ContentRepository
	drafts  ports.DraftStore
	notify  ports.Notifier
	prompt  ports.Prompter
	dir     string // content directory prefix for new posts

	active *ActiveFile
	doc    Document
	state  FileState

	now func() time.Time
}

// NewEditor creates an editor for one signed-in session
func NewEditor(session Session, repo ports.ContentRepository, drafts ports.DraftStore, notify ports.Notifier, prompt ports.Prompter, contentDir string) *Editor {
	return &Editor{
		session: session,
		repo:    repo,
		drafts:  drafts,
		notify:  notify,
		prompt:  prompt,
		dir:     contentDir,
		state:   FileUnloaded,
		now:     time.Now,
	}
}

// Session returns the session this editor operates in
func (e *Editor) Session() Session {
	return e.session
}

// Active returns a copy of the active file identity, or ok=false when
// no file is open.
func (e *Editor) Active() (ActiveFile, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return ActiveFile{}, false
	}
	return *e.active, true
}

// Document returns the current editable content
func (e *Editor) Document() Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// State returns the reconciliation state of the active file
func (e *Editor) State() FileState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Open loads a remote file into the editor. Any pending draft of the
// previously active file is flushed first (its failure is reported but
// does not block the switch). After the remote read, a stored draft
// for the opened path is reconciled: a draft identical to the remote
// is discarded silently; a diverging one is offered to the user once.
func (e *Editor) Open(ctx context.Context, filePath string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.flushLocked()

	remote, err := e.repo.Read(ctx, filePath)
	if err != nil {
		err = fmt.Errorf("failed to open %s: %w", filePath, err)
		e.notify.Notify(err.Error(), true)
		return err
	}

	meta, body := domain.ParseDocument(remote.Content)
	e.active = &ActiveFile{Path: filePath, SHA: remote.SHA}
	e.doc = Document{Meta: meta, Body: body}
	e.state = FileClean

	e.reconcileDraftLocked(remote.Content)
	return nil
}

// reconcileDraftLocked runs the divergence check for the freshly
// opened active file against any stored draft.
func (e *Editor) reconcileDraftLocked(remoteContent string) {
	key := e.session.DraftKey(e.active.Path)

	draft, ok, err := e.drafts.Load(key)
	if err != nil {
		if errors.Is(err, ErrDraftCorrupted) {
			e.notify.Notify(fmt.Sprintf("Discarded unreadable local draft for %s", e.active.Path), true)
		} else {
			e.notify.Notify(fmt.Sprintf("Could not read local draft: %v", err), true)
		}
		return
	}
	if !ok {
		return
	}

	// Compare canonical serializations so formatting-only differences
	// do not count as divergence.
	draftText := domain.SerializeDocument(draft.Meta, draft.Body)
	meta, body := domain.ParseDocument(remoteContent)
	remoteText := domain.SerializeDocument(meta, body)
	if strings.TrimSpace(draftText) == strings.TrimSpace(remoteText) {
		e.clearDraftLocked(key)
		return
	}

	msg := fmt.Sprintf("A local draft from %s differs from the published version. Load the draft?",
		draft.SavedAt.Format("2006-01-02 15:04:05"))
	if e.prompt.Confirm(msg) {
		e.doc = Document{Meta: draft.Meta, Body: draft.Body}
		// The draft now differs from the freshly loaded remote
		// baseline, so the file is dirty again.
		e.state = FileDirty
	} else {
		e.clearDraftLocked(key)
	}
}

// New starts a brand-new post that has no remote counterpart yet. The
// filename is normalized; the title keeps the raw input. The previous
// file's draft is flushed before the switch.
func (e *Editor) New(filename string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	name, err := ValidateFilename(filename)
	if err != nil {
		e.notify.Notify(err.Error(), true)
		return err
	}

	e.flushLocked()

	e.active = &ActiveFile{Path: path.Join(e.dir, name), IsNew: true}
	e.doc = Document{Meta: domain.NewPostMeta(filename, e.now())}
	// A new file has nothing persisted anywhere, so it is dirty from
	// the start.
	e.state = FileDirty
	return nil
}

// Apply replaces the editable content with the given document and
// marks the file dirty. Every metadata or body change in the UI feeds
// through here.
func (e *Editor) Apply(doc Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return
	}
	e.doc = doc
	e.state = FileDirty
}

// Flush snapshots dirty state into the draft store. It is safe to call
// on a timer: failures are reported through the notifier and never
// propagate.
func (e *Editor) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flushLocked()
}

func (e *Editor) flushLocked() {
	if e.active == nil || e.active.Path == "" || e.state != FileDirty {
		return
	}
	key := e.session.DraftKey(e.active.Path)
	if err := e.drafts.Save(key, e.doc.Meta, e.doc.Body); err != nil {
		if errors.Is(err, ErrStorageFull) {
			e.notify.Notify("Draft not saved: local storage is full", true)
		} else {
			e.notify.Notify(fmt.Sprintf("Draft not saved: %v", err), true)
		}
		return
	}
	e.state = FileClean
}

// Save persists the active file to the remote: a create for a new
// file, an update under the held version token otherwise. Success
// clears the draft and returns the file to a clean state.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		err := &ValidationError{Field: "file", Message: "no file is open"}
		e.notify.Notify(err.Error(), true)
		return err
	}

	cmd := NewSavePostCommand(e.repo, e.active.Path, e.doc.Meta, e.doc.Body, e.active.SHA, e.active.IsNew)
	res, err := cmd.Execute(ctx)
	if err != nil {
		e.notify.Notify(err.Error(), true)
		return err
	}

	e.active.SHA = res.SHA
	e.active.IsNew = false
	e.clearDraftLocked(e.session.DraftKey(e.active.Path))
	e.state = FileClean
	e.notify.Notify(res.Message, false)
	return nil
}

// Delete removes the active file. A new file that was never persisted
// is cancelled locally with no remote call; an existing file requires
// user confirmation and the held version token.
func (e *Editor) Delete(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		err := &ValidationError{Field: "file", Message: "no file is open"}
		e.notify.Notify(err.Error(), true)
		return err
	}

	key := e.session.DraftKey(e.active.Path)

	if e.active.IsNew {
		e.clearDraftLocked(key)
		e.unloadLocked()
		e.notify.Notify("Discarded unsaved post", false)
		return nil
	}

	if !e.prompt.Confirm(fmt.Sprintf("Delete %s from the repository?", e.active.Path)) {
		return nil
	}

	cmd := NewDeletePostCommand(e.repo, e.active.Path, e.active.SHA)
	res, err := cmd.Execute(ctx)
	if err != nil {
		e.notify.Notify(err.Error(), true)
		return err
	}

	e.clearDraftLocked(key)
	e.unloadLocked()
	e.notify.Notify(res.Message, false)
	return nil
}

// Rename moves the active file to a new filename. Only a file with a
// remote counterpart can be renamed. The new path is created before
// the old one is deleted, so a failure leaves the post present at the
// old path; a delete-phase failure after a successful create is
// surfaced with an explicit instruction to verify the repository.
func (e *Editor) Rename(ctx context.Context, newFilename string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		err := &ValidationError{Field: "file", Message: "no file is open"}
		e.notify.Notify(err.Error(), true)
		return err
	}
	if e.active.IsNew {
		err := &ValidationError{Field: "file", Message: "save the post before renaming it"}
		e.notify.Notify(err.Error(), true)
		return err
	}

	text := domain.SerializeDocument(e.doc.Meta, e.doc.Body)
	cmd := NewRenamePostCommand(e.repo, e.active.Path, newFilename, e.active.SHA, text)
	res, err := cmd.Execute(ctx)
	if err != nil {
		var ri *RenameIncompleteError
		if errors.As(err, &ri) {
			// The post lives at the new path now; adopt it so the
			// user keeps editing their content.
			e.clearDraftLocked(e.session.DraftKey(e.active.Path))
			e.active.Path = ri.NewPath
			e.active.SHA = ri.NewSHA
		}
		e.notify.Notify(err.Error(), true)
		return err
	}

	e.clearDraftLocked(e.session.DraftKey(e.active.Path))
	e.active.Path = res.NewPath
	e.active.SHA = res.NewSHA
	e.state = FileClean
	e.notify.Notify(res.Message, false)
	return nil
}

// Close flushes any pending draft and unloads the active file. Called
// on logout and on shutdown.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flushLocked()
	e.unloadLocked()
}

func (e *Editor) unloadLocked() {
	e.active = nil
	e.doc = Document{}
	e.state = FileUnloaded
}

func (e *Editor) clearDraftLocked(key ports.DraftKey) {
	if err := e.drafts.Clear(key); err != nil {
		e.notify.Notify(fmt.Sprintf("Could not clear local draft: %v", err), true)
	}
}
