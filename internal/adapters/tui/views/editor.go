package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"scrivo/internal/adapters/tui/styles"
	"scrivo/internal/application"
	"scrivo/internal/domain"
)

// SaveRequestMsg asks the app to persist the active post to the remote
type SaveRequestMsg struct{}

// DeleteRequestMsg asks the app to delete the active post
type DeleteRequestMsg struct{}

// RenameRequestMsg asks the app to rename the active post
type RenameRequestMsg struct {
	NewFilename string
}

// EditBodyMsg asks the app to open the body in the external editor
type EditBodyMsg struct {
	Body string
}

// SwitchToBrowserMsg asks the app to return to the post list
type SwitchToBrowserMsg struct{}

// Metadata field indices in the editor form
const (
	fieldTitle = iota
	fieldPublished
	fieldUpdated
	fieldDescription
	fieldTags
	fieldCategory
	fieldCount
)

// EditorKeyMap defines key bindings for the post editor
type EditorKeyMap struct {
	Save     key.Binding
	External key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Next     key.Binding
	Back     key.Binding
}

var EditorKeys = EditorKeyMap{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	External: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "edit body in $EDITOR"),
	),
	Rename: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "delete"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// EditorModel is the model for the post editing view. Every change made
// through its widgets is pushed into the application editor, which owns
// the clean/dirty state.
type EditorModel struct {
	ViewState
	ed         *application.Editor
	form       *InputForm
	body       textarea.Model
	bodyFocus  bool
	renaming   bool
	renameForm *InputForm
}

// NewEditorModel creates a new post editor view
func NewEditorModel(ed *application.Editor) *EditorModel {
	body := textarea.New()
	body.Placeholder = "Write your post…"
	body.CharLimit = 0
	body.SetHeight(14)
	body.SetWidth(80)

	return &EditorModel{
		ed: ed,
		form: NewInputForm(
			NewInputField("Title", "post title", 200),
			NewInputField("Published", domain.DateFormat, 10),
			NewInputField("Updated", domain.DateFormat, 10),
			NewInputField("Description", "one-line summary", 300),
			NewInputField("Tags", "comma, separated, tags", 300),
			NewInputField("Category", "category", 100),
		),
		body: body,
	}
}

// Init initializes the editor view
func (m *EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

// Populate loads the active document into the form widgets. Call after
// the application editor opens, saves, or renames a file.
func (m *EditorModel) Populate() {
	doc := m.ed.Document()
	m.form.SetValue(fieldTitle, doc.Meta.Title)
	m.form.SetValue(fieldPublished, doc.Meta.Published)
	m.form.SetValue(fieldUpdated, doc.Meta.Updated)
	m.form.SetValue(fieldDescription, doc.Meta.Description)
	m.form.SetValue(fieldTags, domain.JoinTags(doc.Meta.Tags))
	m.form.SetValue(fieldCategory, doc.Meta.Category)
	m.body.SetValue(doc.Body)
	m.form.SetFocus(fieldTitle)
	m.bodyFocus = false
	m.body.Blur()
	m.renaming = false
	m.renameForm = nil
	m.ClearMessage()
}

// SetBody replaces the body text, e.g. after an external editor round
// trip, and records the change.
func (m *EditorModel) SetBody(text string) {
	m.body.SetValue(text)
	m.syncDoc()
}

// syncDoc pushes the widget contents into the application editor when
// they differ from its current document.
func (m *EditorModel) syncDoc() {
	doc := application.Document{
		Meta: domain.PostMeta{
			Title:       m.form.Value(fieldTitle),
			Published:   m.form.Value(fieldPublished),
			Updated:     m.form.Value(fieldUpdated),
			Description: m.form.Value(fieldDescription),
			Tags:        domain.SplitTags(m.form.Value(fieldTags)),
			Category:    m.form.Value(fieldCategory),
		},
		Body: m.body.Value(),
	}

	cur := m.ed.Document()
	if domain.SerializeDocument(doc.Meta, doc.Body) != domain.SerializeDocument(cur.Meta, cur.Body) {
		m.ed.Apply(doc)
	}
}

// Update handles messages for the editor view
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && m.renaming {
		return m.updateRenaming(keyMsg)
	}

	if isKey {
		switch {
		case key.Matches(keyMsg, EditorKeys.Save):
			m.syncDoc()
			return m, func() tea.Msg { return SaveRequestMsg{} }

		case key.Matches(keyMsg, EditorKeys.External):
			m.syncDoc()
			body := m.body.Value()
			return m, func() tea.Msg { return EditBodyMsg{Body: body} }

		case key.Matches(keyMsg, EditorKeys.Rename):
			m.renaming = true
			m.renameForm = NewInputForm(
				NewInputField("New filename", "new-name (normalized automatically)", 120),
			)
			return m, m.renameForm.Init()

		case key.Matches(keyMsg, EditorKeys.Delete):
			return m, func() tea.Msg { return DeleteRequestMsg{} }

		case key.Matches(keyMsg, EditorKeys.Back):
			m.syncDoc()
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(keyMsg, EditorKeys.Next):
			m.cycleFocus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.bodyFocus {
		m.body, cmd = m.body.Update(msg)
	} else {
		_, cmd = m.form.Update(msg)
	}
	if isKey {
		m.syncDoc()
	}
	return m, cmd
}

// cycleFocus moves focus through the metadata fields and then the body
func (m *EditorModel) cycleFocus() {
	if m.bodyFocus {
		m.bodyFocus = false
		m.body.Blur()
		m.form.SetFocus(fieldTitle)
		return
	}
	if m.form.FocusedField == fieldCount-1 {
		m.form.Fields[m.form.FocusedField].Input.Blur()
		m.bodyFocus = true
		m.body.Focus()
		return
	}
	m.form.NextField()
}

func (m *EditorModel) updateRenaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultInputFormKeys.Cancel):
		m.renaming = false
		m.renameForm = nil
		return m, nil

	case key.Matches(msg, DefaultInputFormKeys.Submit):
		name := m.renameForm.Value(0)
		m.renaming = false
		m.renameForm = nil
		if name == "" {
			return m, nil
		}
		return m, func() tea.Msg { return RenameRequestMsg{NewFilename: name} }
	}

	_, cmd := m.renameForm.Update(msg)
	return m, cmd
}

// View renders the editor view
func (m *EditorModel) View() string {
	var b strings.Builder

	active, ok := m.ed.Active()
	if !ok {
		return styles.App.Render(styles.MutedText.Render("No file open."))
	}

	title := active.Path
	if active.IsNew {
		title += " (unsaved)"
	}
	b.WriteString(styles.Title.Render(title))
	if m.ed.State() == application.FileDirty {
		b.WriteString(" ")
		b.WriteString(styles.PostDirty.Render("●"))
	}
	b.WriteString("\n")

	for i := 0; i < fieldCount; i++ {
		b.WriteString(m.form.RenderField(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.InputLabel.Render("Body"))
	b.WriteString("\n")
	if m.bodyFocus {
		b.WriteString(styles.InputFocused.Render(m.body.View()))
	} else {
		b.WriteString(styles.InputField.Render(m.body.View()))
	}
	b.WriteString("\n\n")

	if m.renaming {
		b.WriteString(m.renameForm.RenderField(0))
		b.WriteString("\n")
		b.WriteString(m.renameForm.RenderHelp("rename"))
	} else {
		b.WriteString(renderKeyHelp(
			EditorKeys.Next, EditorKeys.Save, EditorKeys.External,
			EditorKeys.Rename, EditorKeys.Delete, EditorKeys.Back,
		))
	}

	if msg := m.RenderMessage(); msg != "" {
		b.WriteString("\n\n")
		b.WriteString(msg)
	}

	return styles.App.Render(b.String())
}
