package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"scrivo/internal/adapters/tui/styles"
)

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view; any key returns to the
// browser.
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, func() tea.Msg { return SwitchToBrowserMsg{} }
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Help"))
	b.WriteString("\n")

	section := func(name string, bindings ...key.Binding) {
		b.WriteString(styles.Subtitle.Render(name))
		b.WriteString("\n")
		for _, bind := range bindings {
			h := bind.Help()
			b.WriteString("  ")
			b.WriteString(styles.HelpKey.Render(h.Key))
			b.WriteString(strings.Repeat(" ", max(1, 12-len(h.Key))))
			b.WriteString(styles.HelpDesc.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section("Posts",
		BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.PrevPage, BrowserKeys.NextPage,
		BrowserKeys.Open, BrowserKeys.New, BrowserKeys.CopySlug, BrowserKeys.Refresh,
		BrowserKeys.Logout, BrowserKeys.Quit,
	)
	section("Editor",
		EditorKeys.Next, EditorKeys.Save, EditorKeys.External,
		EditorKeys.Rename, EditorKeys.Delete, EditorKeys.Back,
	)

	b.WriteString(styles.MutedText.Render("Edits are snapshotted to a local draft every few seconds; saving publishes to the repository."))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Press any key to go back."))

	return styles.App.Render(b.String())
}
