package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"docme/internal/api"
)

type lettersMsg struct {
	letters []api.Letter
	err     error
}

type deleteDoneMsg struct {
	id  string
	err error
}

type collabListMsg struct {
	id     string
	emails []string
	err    error
}

// DocumentsModel is the saved-documents screen: a one-shot list fetch,
// per-letter collaborator lookups cached by id, and confirmed deletes
// that only drop a row after the server agrees.
type DocumentsModel struct {
	ctx *appCtx

	letters       []api.Letter
	collaborators map[string][]string
	loading       bool
	errText       string
	alert         string
	confirmDelete string

	cursor int
	offset int

	width  int
	height int

	spinnerPos int
}

func NewDocumentsModel(ctx *appCtx) *DocumentsModel {
	return &DocumentsModel{
		ctx:           ctx,
		collaborators: make(map[string][]string),
		width:         100,
		height:        30,
	}
}

func (m *DocumentsModel) Init() tea.Cmd {
	if !m.ctx.sess.Valid() {
		m.errText = "You must be logged in to view saved letters."
		return nil
	}
	return tea.Batch(m.fetchLetters(), spinTick())
}

func (m *DocumentsModel) fetchLetters() tea.Cmd {
	m.loading = true
	client := m.ctx.client
	return func() tea.Msg {
		letters, err := client.ListLetters(context.Background())
		return lettersMsg{letters: letters, err: err}
	}
}

func (m *DocumentsModel) fetchCollaborators(letterID string) tea.Cmd {
	if !m.ctx.sess.Valid() {
		return nil
	}
	client := m.ctx.client
	return func() tea.Msg {
		emails, err := client.ListCollaborators(context.Background(), letterID)
		return collabListMsg{id: letterID, emails: emails, err: err}
	}
}

func (m *DocumentsModel) deleteLetter(letterID string) tea.Cmd {
	m.loading = true
	client := m.ctx.client
	return func() tea.Msg {
		err := client.DeleteLetter(context.Background(), letterID)
		return deleteDoneMsg{id: letterID, err: err}
	}
}

func (m *DocumentsModel) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil, true

	case lettersMsg:
		m.loading = false
		if msg.err != nil {
			m.ctx.log.Error("list letters failed", map[string]interface{}{"error": msg.err.Error()})
			m.errText = "Failed to fetch letters. Please try again later."
			return nil, true
		}
		m.letters = msg.letters
		return nil, true

	case deleteDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.ctx.log.Error("delete letter failed", map[string]interface{}{"id": msg.id, "error": msg.err.Error()})
			m.alert = "Failed to delete letter. Please try again."
			return nil, true
		}
		kept := m.letters[:0]
		for _, l := range m.letters {
			if l.ID != msg.id {
				kept = append(kept, l)
			}
		}
		m.letters = kept
		if m.cursor >= len(m.letters) && m.cursor > 0 {
			m.cursor = len(m.letters) - 1
		}
		return nil, true

	case collabListMsg:
		if msg.err != nil {
			// Matches the web UI: a failed collaborator lookup only logs.
			m.ctx.log.Error("list collaborators failed", map[string]interface{}{"id": msg.id, "error": msg.err.Error()})
			return nil, true
		}
		m.collaborators[msg.id] = msg.emails
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

func (m *DocumentsModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	keys := defaultKeyMap()

	if m.confirmDelete != "" {
		switch msg.String() {
		case "y", "Y":
			id := m.confirmDelete
			m.confirmDelete = ""
			m.alert = ""
			return tea.Batch(m.deleteLetter(id), spinTick()), true
		case "n", "N", "esc":
			m.confirmDelete = ""
			return nil, true
		}
		return nil, true
	}

	switch {
	case msg.String() == "up" || msg.String() == "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()
		return nil, true
	case msg.String() == "down" || msg.String() == "j":
		if m.cursor < len(m.letters)-1 {
			m.cursor++
		}
		m.scrollToCursor()
		return nil, true

	case key.Matches(msg, keys.Enter):
		if l, ok := m.current(); ok {
			return navigateCmd(screenEditor, l.ID), true
		}
		return nil, true

	case key.Matches(msg, keys.Open):
		if l, ok := m.current(); ok && l.WebViewLink != "" {
			return openLinkCmd(l.WebViewLink), true
		}
		return nil, true

	case key.Matches(msg, keys.Collabs):
		if l, ok := m.current(); ok {
			return m.fetchCollaborators(l.ID), true
		}
		return nil, true

	case key.Matches(msg, keys.Delete):
		if m.loading {
			return nil, true
		}
		if l, ok := m.current(); ok {
			m.confirmDelete = l.ID
		}
		return nil, true
	}
	return nil, false
}

func (m *DocumentsModel) current() (api.Letter, bool) {
	if m.cursor < 0 || m.cursor >= len(m.letters) {
		return api.Letter{}, false
	}
	return m.letters[m.cursor], true
}

func (m *DocumentsModel) scrollToCursor() {
	visible := m.listHeight()
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *DocumentsModel) listHeight() int {
	return m.height - 6
}

func (m *DocumentsModel) View() string {
	t := m.ctx.theme

	if m.loading && len(m.letters) == 0 {
		return "\n " + t.Spinner.Render(spinnerFrames[m.spinnerPos]) + " " + t.Subtitle.Render("Loading...")
	}
	if m.errText != "" {
		return "\n " + t.MessageErr.Render(m.errText)
	}

	var b strings.Builder
	b.WriteString(t.Title.Render("My Documents") + "\n")

	if m.alert != "" {
		b.WriteString(t.MessageErr.Render(m.alert) + "\n")
	}

	if len(m.letters) == 0 {
		b.WriteString("\n" + t.Subtitle.Render("No saved letters found.") + "\n")
		return b.String()
	}

	start := m.offset
	end := start + m.listHeight()
	if end > len(m.letters) {
		end = len(m.letters)
	}
	for i := start; i < end; i++ {
		l := m.letters[i]
		prefix := "  "
		style := t.ListItem
		if i == m.cursor {
			prefix = "> "
			style = t.ListSel
		}
		line := prefix + style.Render(truncateRunes(l.Title, maxInt(20, m.width-30)))
		if l.WebViewLink != "" {
			line += "  " + t.LinkHint.Render("Drive")
		}
		b.WriteString(line + "\n")

		if m.confirmDelete == l.ID {
			b.WriteString("    " + t.Message.Render("Are you sure you want to delete this document? This cannot be undone. (y/n)") + "\n")
		}
		if emails, ok := m.collaborators[l.ID]; ok && i == m.cursor {
			if len(emails) == 0 {
				b.WriteString("    " + t.Placeholder.Render("No collaborators") + "\n")
			}
			for _, email := range emails {
				b.WriteString("    " + t.FileMeta.Render(email) + "\n")
			}
		}
	}

	b.WriteString("\n" + t.Footer.Render("enter edit  o open in Drive  c collaborators  d delete"))
	return b.String()
}
