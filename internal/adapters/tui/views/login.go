package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"scrivo/internal/adapters/tui/styles"
)

// LoginSubmitMsg asks the app to probe the remote with the entered
// credentials
type LoginSubmitMsg struct {
	Account    string
	Repository string
	Token      string
}

// LoginKeyMap defines key bindings for the login view
type LoginKeyMap struct {
	Submit key.Binding
	Quit   key.Binding
}

var LoginKeys = LoginKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "sign in"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// LoginModel is the model for the sign-in view
type LoginModel struct {
	ViewState
	form    *InputForm
	waiting bool
}

// NewLoginModel creates a new login view model
func NewLoginModel() *LoginModel {
	token := NewInputField("Access token", "personal access token", 200)
	token.Input.EchoMode = textinput.EchoPassword
	return &LoginModel{
		form: NewInputForm(
			NewInputField("Account", "github user or org", 60),
			NewInputField("Repository", "blog repository name", 100),
			token,
		),
	}
}

// Init initializes the login view
func (m *LoginModel) Init() tea.Cmd {
	m.waiting = false
	return m.form.Init()
}

// SetWaiting toggles the probing indicator
func (m *LoginModel) SetWaiting(waiting bool) {
	m.waiting = waiting
}

// Update handles messages for the login view
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.waiting {
		switch {
		case key.Matches(keyMsg, LoginKeys.Quit):
			return m, func() tea.Msg { return QuitMsg{} }

		case key.Matches(keyMsg, LoginKeys.Submit):
			account := m.form.Value(0)
			repository := m.form.Value(1)
			token := m.form.Value(2)
			if account == "" || repository == "" || token == "" {
				m.SetMessage("account, repository, and token are all required", true)
				return m, nil
			}
			m.waiting = true
			m.ClearMessage()
			return m, func() tea.Msg {
				return LoginSubmitMsg{Account: account, Repository: repository, Token: token}
			}
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the login view
func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("scrivo"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Sign in to edit your blog repository"))
	b.WriteString("\n\n")

	for i := range m.form.Fields {
		b.WriteString(m.form.RenderField(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.waiting {
		b.WriteString(styles.MutedText.Render("Checking access…"))
	} else {
		b.WriteString(m.form.RenderHelp("sign in"))
	}

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString("\n\n")
		b.WriteString(msg)
	}

	return styles.App.Render(b.String())
}
