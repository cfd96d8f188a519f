package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docme/internal/api"
	"docme/internal/letter"
)

type editorFocus int

const (
	focusTitle editorFocus = iota
	focusContent
	focusCollab
)

type letterLoadedMsg struct {
	letter *api.Letter
	err    error
}

type saveDoneMsg struct {
	result *api.SaveResult
	update bool
	err    error
}

type collabAddedMsg struct {
	err error
}

// EditorModel is the document editor screen. id is the route-level
// document id; its presence alone decides create-vs-update on save,
// matching the web UI.
type EditorModel struct {
	ctx *appCtx
	id  string

	title   textinput.Model
	content textarea.Model
	collab  textinput.Model
	focus   editorFocus

	showCollabForm bool
	showPreview    bool
	savedFileID    string
	fileLink       string

	loading   bool
	busyLabel string
	message   string

	renderer *letter.Renderer

	width  int
	height int

	spinnerPos int
}

func NewEditorModel(ctx *appCtx, id string) *EditorModel {
	ti := textinput.New()
	ti.Placeholder = "Title / File Name"
	ti.CharLimit = 256
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Write your letter... (markdown)"
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	ci := textinput.New()
	ci.Placeholder = "Collaborator Email"
	ci.CharLimit = 256

	return &EditorModel{
		ctx:      ctx,
		id:       id,
		title:    ti,
		content:  ta,
		collab:   ci,
		focus:    focusTitle,
		renderer: letter.NewRenderer(),
		width:    100,
		height:   30,
	}
}

func (m *EditorModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.id != "" {
		cmds = append(cmds, m.loadDocument(), spinTick())
	}
	return tea.Batch(cmds...)
}

func (m *EditorModel) loadDocument() tea.Cmd {
	m.loading = true
	m.busyLabel = "Loading..."
	client := m.ctx.client
	id := m.id
	return func() tea.Msg {
		l, err := client.GetLetter(context.Background(), id)
		return letterLoadedMsg{letter: l, err: err}
	}
}

func (m *EditorModel) save() tea.Cmd {
	if !m.ctx.sess.Valid() {
		m.message = "❌ You must be logged in to save a letter."
		return nil
	}
	title := strings.TrimSpace(m.title.Value())
	content := strings.TrimSpace(m.content.Value())
	if title == "" || content == "" {
		m.message = "⚠️ Title and content cannot be empty."
		return nil
	}

	m.loading = true
	m.busyLabel = "Saving..."
	m.message = ""
	html := letter.ToHTML(content)
	client := m.ctx.client
	id := m.id
	return func() tea.Msg {
		if id != "" {
			res, err := client.UpdateLetter(context.Background(), id, title, html)
			return saveDoneMsg{result: res, update: true, err: err}
		}
		res, err := client.SaveLetter(context.Background(), title, html)
		return saveDoneMsg{result: res, update: false, err: err}
	}
}

func (m *EditorModel) addCollaborator() tea.Cmd {
	if !m.ctx.sess.Valid() {
		m.message = "❌ You must be logged in to add a collaborator."
		return nil
	}
	email := strings.TrimSpace(m.collab.Value())
	if email == "" {
		m.message = "⚠️ Collaborator email cannot be empty."
		return nil
	}
	if m.savedFileID == "" && m.id == "" {
		m.message = "⚠️ Please save the letter first before adding collaborators."
		return nil
	}

	documentID := m.savedFileID
	if documentID == "" {
		documentID = m.id
	}

	m.loading = true
	m.busyLabel = "Adding collaborator..."
	m.message = ""
	client := m.ctx.client
	return func() tea.Msg {
		err := client.AddCollaborator(context.Background(), documentID, email)
		return collabAddedMsg{err: err}
	}
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.title.Width = msg.Width - 8
		m.content.SetWidth(msg.Width - 6)
		m.content.SetHeight(maxInt(5, msg.Height-12))
		m.collab.Width = msg.Width - 8
		return nil, true

	case letterLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.ctx.log.Error("load document failed", map[string]interface{}{"id": m.id, "error": msg.err.Error()})
			m.message = "❌ Failed to load document"
			return nil, true
		}
		m.title.SetValue(msg.letter.Title)
		m.content.SetValue(letter.ToEditable(msg.letter.Content))
		if msg.letter.DriveFileID != "" {
			m.savedFileID = msg.letter.DriveFileID
		} else {
			m.savedFileID = m.id
		}
		m.fileLink = msg.letter.WebViewLink
		m.message = "Document loaded successfully"
		return nil, true

	case saveDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.message = "❌ Failed to save letter. Please try again."
			return nil, true
		}
		if msg.result.FileID != "" {
			m.savedFileID = msg.result.FileID
		} else if m.id != "" {
			m.savedFileID = m.id
		}
		m.fileLink = msg.result.WebViewLink
		if msg.update {
			m.message = "✅ Letter updated successfully!"
		} else {
			m.message = "✅ Letter saved successfully!"
		}
		return nil, true

	case collabAddedMsg:
		m.loading = false
		if msg.err != nil {
			if se, ok := msg.err.(*api.StatusError); ok && se.Message != "" {
				m.message = "❌ Failed to add collaborator: " + se.Message
			} else {
				m.message = "❌ Failed to add collaborator. Please try again."
			}
			return nil, true
		}
		m.message = "✅ Collaborator added successfully!"
		m.collab.Reset()
		return nil, true

	case spinMsg:
		if m.loading {
			m.spinnerPos = (m.spinnerPos + 1) % len(spinnerFrames)
			return spinTick(), true
		}
		return nil, true

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil, false
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	keys := defaultKeyMap()

	// esc bubbles up to the shell for navigation
	if msg.String() == "esc" {
		return nil, false
	}

	switch {
	case key.Matches(msg, keys.Save):
		if m.loading {
			return nil, true
		}
		if cmd := m.save(); cmd != nil {
			return tea.Batch(cmd, spinTick()), true
		}
		return nil, true

	case key.Matches(msg, keys.Preview):
		m.showPreview = !m.showPreview
		return nil, true

	case key.Matches(msg, keys.Collab):
		m.showCollabForm = !m.showCollabForm
		if m.showCollabForm {
			m.setFocus(focusCollab)
		} else if m.focus == focusCollab {
			m.setFocus(focusContent)
		}
		return nil, true

	case key.Matches(msg, keys.FocusNext):
		m.cycleFocus()
		return nil, true

	case key.Matches(msg, keys.Enter) && m.focus == focusCollab:
		if m.loading {
			return nil, true
		}
		if cmd := m.addCollaborator(); cmd != nil {
			return tea.Batch(cmd, spinTick()), true
		}
		return nil, true

	case key.Matches(msg, keys.Enter) && m.focus == focusTitle:
		m.setFocus(focusContent)
		return nil, true
	}

	if m.loading {
		return nil, true
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusContent:
		m.content, cmd = m.content.Update(msg)
	case focusCollab:
		m.collab, cmd = m.collab.Update(msg)
	}
	return cmd, true
}

func (m *EditorModel) setFocus(f editorFocus) {
	m.focus = f
	m.title.Blur()
	m.content.Blur()
	m.collab.Blur()
	switch f {
	case focusTitle:
		m.title.Focus()
	case focusContent:
		m.content.Focus()
	case focusCollab:
		m.collab.Focus()
	}
}

func (m *EditorModel) cycleFocus() {
	switch m.focus {
	case focusTitle:
		m.setFocus(focusContent)
	case focusContent:
		if m.showCollabForm {
			m.setFocus(focusCollab)
		} else {
			m.setFocus(focusTitle)
		}
	case focusCollab:
		m.setFocus(focusTitle)
	}
}

func (m *EditorModel) View() string {
	t := m.ctx.theme
	var b strings.Builder

	heading := "New Document"
	if m.id != "" {
		heading = "Edit Document"
	}
	status := ""
	if m.loading {
		status = "  " + t.Spinner.Render(spinnerFrames[m.spinnerPos]+" "+m.busyLabel)
	}
	b.WriteString(t.Title.Render(heading) + status + "\n")

	if m.message != "" {
		b.WriteString(m.renderMessage() + "\n")
	}

	titleBox := t.InputBox
	if m.focus == focusTitle {
		titleBox = t.InputBoxF
	}
	b.WriteString(titleBox.Width(maxInt(20, m.width-4)).Render(m.title.View()) + "\n")

	if m.showPreview {
		preview := m.renderer.Render(letter.ToHTML(m.content.Value()), m.width-8)
		b.WriteString(t.Pane.Width(maxInt(20, m.width-4)).Render(t.PaneTitle.Render("Preview") + "\n" + preview))
		b.WriteString("\n")
	} else {
		contentBox := t.InputBox
		if m.focus == focusContent {
			contentBox = t.InputBoxF
		}
		b.WriteString(contentBox.Width(maxInt(20, m.width-4)).Render(m.content.View()) + "\n")
	}

	if m.fileLink != "" {
		b.WriteString(t.Subtitle.Render("Saved to Google Drive: ") + t.LinkHint.Render(m.fileLink) + "\n")
	}

	if m.showCollabForm {
		collabBox := t.InputBox
		if m.focus == focusCollab {
			collabBox = t.InputBoxF
		}
		b.WriteString(t.PaneTitle.Render("Add Collaborator") + "\n")
		b.WriteString(collabBox.Width(maxInt(20, m.width-4)).Render(m.collab.View()) + "\n")
	}

	save := "ctrl+s save"
	if m.id != "" {
		save = "ctrl+s update"
	}
	b.WriteString(t.Footer.Render(save + "  ctrl+p preview  ctrl+k collaborator  tab focus"))
	return b.String()
}

func (m *EditorModel) renderMessage() string {
	t := m.ctx.theme
	switch {
	case strings.HasPrefix(m.message, "✅"):
		return t.MessageOK.Render(m.message)
	case strings.HasPrefix(m.message, "❌"):
		return t.MessageErr.Render(m.message)
	case strings.HasPrefix(m.message, "⚠️"):
		return t.Message.Render(m.message)
	default:
		return t.Subtitle.Render(m.message)
	}
}
