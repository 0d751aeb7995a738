package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"scrivo/internal/adapters/tui/styles"
	"scrivo/internal/adapters/tui/views"
	"scrivo/internal/application"
	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

// statusTTL is how long a status line stays on screen
const statusTTL = 4 * time.Second

// ViewState represents the current view
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewBrowser
	ViewEditor
	ViewHelp
)

// RepoFactory builds a content repository client for a session's
// credentials.
type RepoFactory func(ports.SessionRecord) ports.ContentRepository

// App is the main TUI application model. It owns view switching, the
// signed-in session, the periodic draft flush, and the status/confirm
// plumbing between background operations and the screen.
type App struct {
	sessions   ports.SessionStore
	drafts     ports.DraftStore
	newRepo    RepoFactory
	opener     ports.BodyEditor
	contentDir string
	hub        *StatusHub

	repo   ports.ContentRepository
	editor *application.Editor

	state   ViewState
	login   *views.LoginModel
	browser *views.BrowserModel
	edit    *views.EditorModel
	help    *views.HelpModel

	confirm   *promptRequest
	status    note
	statusSeq int

	// pendingOpen guards against a slow open completing after the user
	// has already asked for a different file.
	pendingOpen string

	width  int
	height int
}

// NewApp creates the TUI application. When resume is non-nil the app
// skips the login view and starts signed in.
func NewApp(sessions ports.SessionStore, drafts ports.DraftStore, newRepo RepoFactory, opener ports.BodyEditor, contentDir string, resume *ports.SessionRecord) *App {
	a := &App{
		sessions:   sessions,
		drafts:     drafts,
		newRepo:    newRepo,
		opener:     opener,
		contentDir: contentDir,
		hub:        NewStatusHub(),
		state:      ViewLogin,
		login:      views.NewLoginModel(),
		help:       views.NewHelpModel(),
	}
	if resume != nil {
		a.startSession(*resume)
		a.state = ViewBrowser
	}
	return a
}

// startSession wires up the repository client and editor for one
// signed-in account/repository pair.
func (a *App) startSession(rec ports.SessionRecord) {
	session := application.NewSession(rec)
	a.repo = a.newRepo(rec)
	a.editor = application.NewEditor(session, a.repo, a.drafts, a.hub, a.hub, a.contentDir)
	a.browser = views.NewBrowserModel(a.repo, rec.Account, rec.Repository)
	a.edit = views.NewEditorModel(a.editor)
}

// endSession tears the session down, flushing pending drafts first
func (a *App) endSession() {
	if a.editor != nil {
		a.editor.Close()
	}
	a.editor = nil
	a.repo = nil
	a.browser = nil
	a.edit = nil
	a.pendingOpen = ""
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.waitForNote(), a.waitForPrompt(), a.flushTick()}
	if a.state == ViewBrowser {
		cmds = append(cmds, a.browser.Init())
	} else {
		cmds = append(cmds, a.login.Init())
	}
	return tea.Batch(cmds...)
}

// --- internal messages ---

type noteMsg note

type promptMsg promptRequest

type statusClearMsg struct{ seq int }

type flushTickMsg time.Time

type loginResultMsg struct {
	rec ports.SessionRecord
	err error
}

type openedMsg struct {
	path string
	err  error
}

type savedMsg struct{ err error }

type deletedMsg struct{ err error }

type renamedMsg struct{ err error }

type bodyEditedMsg struct {
	text string
	err  error
}

// --- commands ---

func (a *App) waitForNote() tea.Cmd {
	return func() tea.Msg { return noteMsg(<-a.hub.notes) }
}

func (a *App) waitForPrompt() tea.Cmd {
	return func() tea.Msg { return promptMsg(<-a.hub.prompts) }
}

func (a *App) flushTick() tea.Cmd {
	return tea.Tick(application.FlushInterval, func(t time.Time) tea.Msg {
		return flushTickMsg(t)
	})
}

func (a *App) statusExpiry() tea.Cmd {
	seq := a.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// editBody round-trips the post body through the external editor
func (a *App) editBody(body string) tea.Cmd {
	path, err := a.opener.Scratch(body)
	if err != nil {
		return func() tea.Msg { return bodyEditedMsg{err: err} }
	}
	cmd, err := a.opener.Command(path)
	if err != nil {
		os.Remove(path)
		return func() tea.Msg { return bodyEditedMsg{err: err} }
	}
	return tea.ExecProcess(cmd, func(execErr error) tea.Msg {
		defer os.Remove(path)
		if execErr != nil {
			return bodyEditedMsg{err: execErr}
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return bodyEditedMsg{err: readErr}
		}
		return bodyEditedMsg{text: string(data)}
	})
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		if a.browser != nil {
			a.browser.SetSize(msg.Width, msg.Height)
		}
		if a.edit != nil {
			a.edit.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if a.confirm != nil {
			return a.answerConfirm(msg)
		}
		if msg.String() == "ctrl+c" {
			a.endSession()
			return a, tea.Quit
		}

	// Plumbing messages
	case noteMsg:
		a.statusSeq++
		a.status = note(msg)
		return a, tea.Batch(a.waitForNote(), a.statusExpiry())

	case statusClearMsg:
		if msg.seq == a.statusSeq {
			a.status = note{}
		}
		return a, nil

	case promptMsg:
		req := promptRequest(msg)
		a.confirm = &req
		return a, nil

	case flushTickMsg:
		ed := a.editor
		if ed == nil {
			return a, a.flushTick()
		}
		return a, tea.Batch(a.flushTick(), func() tea.Msg {
			ed.Flush()
			return nil
		})

	// Login flow
	case views.LoginSubmitMsg:
		rec := ports.SessionRecord{Account: msg.Account, Repository: msg.Repository, Token: msg.Token}
		repo := a.newRepo(rec)
		return a, func() tea.Msg {
			return loginResultMsg{rec: rec, err: application.Probe(context.Background(), repo)}
		}

	case loginResultMsg:
		a.login.SetWaiting(false)
		if msg.err != nil {
			a.login.SetMessage(fmt.Sprintf("Sign-in failed: %v", msg.err), true)
			return a, nil
		}
		if err := a.sessions.Save(msg.rec); err != nil {
			a.hub.Notify(fmt.Sprintf("Could not remember session: %v", err), true)
		}
		a.startSession(msg.rec)
		a.state = ViewBrowser
		a.browser.SetSize(a.width, a.height)
		a.edit.SetSize(a.width, a.height)
		return a, a.browser.Init()

	case views.LogoutMsg:
		a.endSession()
		if err := a.sessions.Clear(); err != nil {
			a.hub.Notify(fmt.Sprintf("Could not clear session: %v", err), true)
		}
		a.state = ViewLogin
		a.login = views.NewLoginModel()
		a.login.SetSize(a.width, a.height)
		return a, a.login.Init()

	case views.QuitMsg:
		a.endSession()
		return a, tea.Quit

	// View switching
	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Post actions
	case views.OpenPostMsg:
		if a.pendingOpen != "" {
			// One open at a time; a second request would race the
			// first for the editor lock in arbitrary order.
			return a, nil
		}
		a.pendingOpen = msg.Path
		ed := a.editor
		return a, func() tea.Msg {
			return openedMsg{path: msg.Path, err: ed.Open(context.Background(), msg.Path)}
		}

	case openedMsg:
		if msg.path != a.pendingOpen {
			return a, nil
		}
		a.pendingOpen = ""
		if msg.err != nil {
			return a, nil
		}
		if active, ok := a.editor.Active(); !ok || active.Path != msg.path {
			// The editor has moved on since this open completed.
			return a, nil
		}
		a.edit.Populate()
		a.state = ViewEditor
		return a, a.edit.Init()

	case views.NewPostMsg:
		if err := a.editor.New(msg.Filename); err != nil {
			return a, nil
		}
		a.edit.Populate()
		a.state = ViewEditor
		return a, a.edit.Init()

	case views.SaveRequestMsg:
		ed := a.editor
		return a, func() tea.Msg { return savedMsg{err: ed.Save(context.Background())} }

	case savedMsg:
		return a, nil

	case views.DeleteRequestMsg:
		ed := a.editor
		return a, func() tea.Msg { return deletedMsg{err: ed.Delete(context.Background())} }

	case deletedMsg:
		if _, open := a.editor.Active(); !open {
			a.state = ViewBrowser
			return a, a.browser.Reload()
		}
		return a, nil

	case views.RenameRequestMsg:
		ed := a.editor
		name := msg.NewFilename
		return a, func() tea.Msg { return renamedMsg{err: ed.Rename(context.Background(), name)} }

	case renamedMsg:
		// Repopulate even on failure: an interrupted rename can leave
		// the post adopted at its new path.
		if _, open := a.editor.Active(); open {
			a.edit.Populate()
		}
		return a, nil

	case views.EditBodyMsg:
		return a, a.editBody(msg.Body)

	case bodyEditedMsg:
		if msg.err != nil {
			a.edit.SetMessage(fmt.Sprintf("External edit failed: %v", msg.err), true)
			return a, nil
		}
		a.edit.SetBody(msg.text)
		return a, nil

	case views.CopySlugMsg:
		slug := domain.Slug(msg.Path)
		if err := clipboard.WriteAll(slug); err != nil {
			a.browser.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		} else {
			a.browser.SetMessage(fmt.Sprintf("Copied slug %q", slug), false)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewLogin:
		_, cmd = a.login.Update(msg)
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewEditor:
		_, cmd = a.edit.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// answerConfirm resolves the pending yes/no prompt
func (a *App) answerConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.confirm.reply <- true
	case "n", "N", "esc":
		a.confirm.reply <- false
	default:
		return a, nil
	}
	a.confirm = nil
	return a, a.waitForPrompt()
}

// View renders the current view with the confirm overlay and status bar
func (a *App) View() string {
	if a.confirm != nil {
		box := a.confirm.message + "\n\n" +
			styles.HelpKey.Render("y") + " " + styles.HelpDesc.Render("yes") + "  " +
			styles.HelpKey.Render("n") + " " + styles.HelpDesc.Render("no")
		return styles.App.Render(styles.ConfirmBox.Render(box))
	}

	var out string
	switch a.state {
	case ViewLogin:
		out = a.login.View()
	case ViewBrowser:
		out = a.browser.View()
	case ViewEditor:
		out = a.edit.View()
	case ViewHelp:
		out = a.help.View()
	}

	if a.status.text != "" {
		if a.status.isErr {
			out += "\n" + styles.StatusError.Render(a.status.text)
		} else {
			out += "\n" + styles.StatusBar.Render(a.status.text)
		}
	}
	return out
}
