package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scrivo/internal/adapters/tui/styles"
	"scrivo/internal/application"
	"scrivo/internal/domain"
	"scrivo/internal/ports"
)

// OpenPostMsg asks the app to load a post into the editor
type OpenPostMsg struct {
	Path string
}

// NewPostMsg asks the app to start a new local post
type NewPostMsg struct {
	Filename string
}

// CopySlugMsg asks the app to copy a post's slug to the clipboard
type CopySlugMsg struct {
	Path string
}

// LogoutMsg asks the app to clear the session and return to login
type LogoutMsg struct{}

// QuitMsg asks the app to shut down after flushing pending drafts
type QuitMsg struct{}

// SwitchToHelpMsg asks the app to show the help view
type SwitchToHelpMsg struct{}

// postsLoadedMsg carries the result of a post listing
type postsLoadedMsg struct {
	posts []ports.FileRef
	err   error
}

// BrowserKeyMap defines key bindings for the post browser
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Open     key.Binding
	New      key.Binding
	CopySlug key.Binding
	Refresh  key.Binding
	Logout   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "h", "pgup"),
		key.WithHelp("←/h", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "l", "pgdown"),
		key.WithHelp("→/l", "next page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new post"),
	),
	CopySlug: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy slug"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "refresh"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "logout"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the post list view
type BrowserModel struct {
	ViewState
	repo      ports.ContentRepository
	account   string
	repoName  string
	posts     []ports.FileRef
	paginator *Paginator
	loading   bool
	naming    bool
	nameForm  *InputForm
}

// NewBrowserModel creates a new post browser model
func NewBrowserModel(repo ports.ContentRepository, account, repoName string) *BrowserModel {
	return &BrowserModel{
		repo:      repo,
		account:   account,
		repoName:  repoName,
		paginator: NewPaginator(15),
	}
}

// Init triggers the initial post listing
func (m *BrowserModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload returns a command that fetches the post listing
func (m *BrowserModel) Reload() tea.Cmd {
	m.loading = true
	repo := m.repo
	return func() tea.Msg {
		res, err := application.NewListPostsCommand(repo).Execute(context.Background())
		if err != nil {
			return postsLoadedMsg{err: err}
		}
		return postsLoadedMsg{posts: res.Posts}
	}
}

// Selected returns the post under the cursor, if any
func (m *BrowserModel) Selected() (ports.FileRef, bool) {
	if len(m.posts) == 0 {
		return ports.FileRef{}, false
	}
	return m.posts[m.paginator.Cursor()], true
}

// Update handles messages for the browser view
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.SetMessage(fmt.Sprintf("Listing posts failed: %v", msg.err), true)
			return m, nil
		}
		m.posts = msg.posts
		m.paginator.SetTotal(len(m.posts))
		m.ClearMessage()
		return m, nil

	case tea.KeyMsg:
		if m.naming {
			return m.updateNaming(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, BrowserKeys.Up):
		m.paginator.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.paginator.CursorDown()

	case key.Matches(msg, BrowserKeys.PrevPage):
		m.paginator.PrevPage()

	case key.Matches(msg, BrowserKeys.NextPage):
		m.paginator.NextPage()

	case key.Matches(msg, BrowserKeys.Open):
		if ref, ok := m.Selected(); ok {
			return m, func() tea.Msg { return OpenPostMsg{Path: ref.Path} }
		}

	case key.Matches(msg, BrowserKeys.New):
		m.naming = true
		m.nameForm = NewInputForm(
			NewInputField("Filename", "my-new-post (normalized automatically)", 120),
		)
		return m, m.nameForm.Init()

	case key.Matches(msg, BrowserKeys.CopySlug):
		if ref, ok := m.Selected(); ok {
			return m, func() tea.Msg { return CopySlugMsg{Path: ref.Path} }
		}

	case key.Matches(msg, BrowserKeys.Refresh):
		return m, m.Reload()

	case key.Matches(msg, BrowserKeys.Logout):
		return m, func() tea.Msg { return LogoutMsg{} }

	case key.Matches(msg, BrowserKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BrowserKeys.Quit):
		return m, func() tea.Msg { return QuitMsg{} }
	}

	return m, nil
}

func (m *BrowserModel) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultInputFormKeys.Cancel):
		m.naming = false
		m.nameForm = nil
		return m, nil

	case key.Matches(msg, DefaultInputFormKeys.Submit):
		name := m.nameForm.Value(0)
		m.naming = false
		m.nameForm = nil
		if name == "" {
			return m, nil
		}
		return m, func() tea.Msg { return NewPostMsg{Filename: name} }
	}

	_, cmd := m.nameForm.Update(msg)
	return m, cmd
}

// View renders the browser view
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("%s/%s", m.account, m.repoName)))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(styles.MutedText.Render("Loading posts…"))
		b.WriteString("\n")

	case len(m.posts) == 0:
		b.WriteString(styles.MutedText.Render("No posts yet. Press n to create one."))
		b.WriteString("\n")

	default:
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			ref := m.posts[i]
			line := fmt.Sprintf("%-40s %s", ref.Name, styles.PostSlug.Render(domain.Slug(ref.Name)))
			if i == m.paginator.Cursor() {
				b.WriteString(styles.PostSelected.Render("> " + line))
			} else {
				b.WriteString(styles.PostRow.Render("  " + line))
			}
			b.WriteString("\n")
		}
		if legend := m.paginator.Legend("posts"); legend != "" {
			b.WriteString(styles.MutedText.Render(legend))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	if m.naming {
		b.WriteString(m.nameForm.RenderField(0))
		b.WriteString("\n")
		b.WriteString(m.nameForm.RenderHelp("create"))
	} else {
		b.WriteString(renderKeyHelp(
			BrowserKeys.Open, BrowserKeys.New, BrowserKeys.CopySlug,
			BrowserKeys.Refresh, BrowserKeys.Help, BrowserKeys.Quit,
		))
	}

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString("\n\n")
		b.WriteString(msg)
	}

	return styles.App.Render(b.String())
}

// renderKeyHelp renders a single help line from key bindings
func renderKeyHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
