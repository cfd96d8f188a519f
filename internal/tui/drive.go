package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"docme/internal/api"
)

// Per-folder fetch state. A folder id absent from the arena has never
// been expanded. Collapse keeps the entry; re-expanding always
// refetches and overwrites it, so an open folder shows fresh data.
type folderPhase int

const (
	folderLoading folderPhase = iota
	folderLoaded
	folderError
)

type folderState struct {
	phase    folderPhase
	children []api.DriveFile
	err      error
}

type rootFilesMsg struct {
	stamp int64
	files []api.DriveFile
	err   error
}

type folderFilesMsg struct {
	folderID string
	files    []api.DriveFile
	err      error
}

// DriveModel is the Drive browser screen. The tree is not a nested
// structure: the root listing plus an arena of per-folder states keyed
// by id, with a separate expanded set controlling visibility only.
type DriveModel struct {
	ctx *appCtx

	files       []api.DriveFile
	folders     map[string]*folderState
	expanded    map[string]bool
	loading     bool
	errText     string
	lastRefresh int64

	cursor int
	offset int

	width  int
	height int

	spinnerPos int
}

func NewDriveModel(ctx *appCtx) *DriveModel {
	return &DriveModel{
		ctx:      ctx,
		folders:  make(map[string]*folderState),
		expanded: make(map[string]bool),
		width:    100,
		height:   30,
	}
}

func (m *DriveModel) Init() tea.Cmd {
	if cmd := m.refresh(); cmd != nil {
		return tea.Batch(cmd, spinTick())
	}
	return nil
}

// refresh bumps the refresh stamp and re-issues the root fetch,
// replacing the root list wholesale. Folder states are untouched.
func (m *DriveModel) refresh() tea.Cmd {
	m.lastRefresh = time.Now().UnixMilli()
	if !m.ctx.sess.Valid() {
		m.loading = false
		m.errText = "You must be logged in to view files"
		return nil
	}
	m.loading = true
	stamp := m.lastRefresh
	client := m.ctx.client
	return func() tea.Msg {
		files, err := client.DriveRoot(context.Background())
		return rootFilesMsg{stamp: stamp, files: files, err: err}
	}
}

// toggleFolder collapses an expanded folder (children retained, just
// hidden) or expands a collapsed one. Expanding always refetches, even
// when children are cached from an earlier cycle.
func (m *DriveModel) toggleFolder(folderID string) tea.Cmd {
	if m.expanded[folderID] {
		m.expanded[folderID] = false
		return nil
	}
	m.expanded[folderID] = true

	if !m.ctx.sess.Valid() {
		return nil
	}
	m.folders[folderID] = &folderState{phase: folderLoading}
	client := m.ctx.client
	return func() tea.Msg {
		files, err := client.DriveFolder(context.Background(), folderID)
		return folderFilesMsg{folderID: folderID, files: files, err: err}
	}
}

func (m *DriveModel) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil, true

	case rootFilesMsg:
		// No stamp gate: overlapping refreshes resolve last-write-wins.
		m.loading = false
		if msg.err != nil {
			m.ctx.log.Error("drive root fetch failed", map[string]interface{}{"error": msg.err.Error()})
			if len(m.files) == 0 {
				m.errText = "Failed to fetch Google Drive files"
			}
			return nil, true
		}
		m.files = msg.files
		m.errText = ""
		m.clampCursor()
		return nil, true

	case folderFilesMsg:
		if msg.err != nil {
			m.ctx.log.Error("drive folder fetch failed", map[string]interface{}{"folder": msg.folderID, "error": msg.err.Error()})
			m.folders[msg.folderID] = &folderState{phase: folderError, err: msg.err}
		} else {
			m.folders[msg.folderID] = &folderState{phase: folderLoaded, children: msg.files}
		}
		m.clampCursor()
		return nil, true

	case spinMsg:
		if m.loading || m.anyFolderLoading() {
			m.spinnerPos = (m.spinnerPos + 1) % len(spinnerFrames)
			return spinTick(), true
		}
		return nil, true

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil, false
}

func (m *DriveModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	keys := defaultKeyMap()
	rows := m.visibleRows()

	switch {
	case msg.String() == "up" || msg.String() == "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor(len(rows))
		return nil, true
	case msg.String() == "down" || msg.String() == "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		m.scrollToCursor(len(rows))
		return nil, true

	case key.Matches(msg, keys.Refresh):
		if m.loading {
			return nil, true
		}
		if cmd := m.refresh(); cmd != nil {
			return tea.Batch(cmd, spinTick()), true
		}
		return nil, true

	case key.Matches(msg, keys.Enter):
		if m.cursor >= len(rows) {
			return nil, true
		}
		row := rows[m.cursor]
		if row.placeholder != "" {
			return nil, true
		}
		if row.file.IsFolder() {
			if cmd := m.toggleFolder(row.file.ID); cmd != nil {
				return tea.Batch(cmd, spinTick()), true
			}
			return nil, true
		}
		if row.file.WebViewLink != "" {
			return openLinkCmd(row.file.WebViewLink), true
		}
		return nil, true

	case key.Matches(msg, keys.Open):
		if m.cursor >= len(rows) {
			return nil, true
		}
		row := rows[m.cursor]
		if row.placeholder == "" && row.file.WebViewLink != "" {
			return openLinkCmd(row.file.WebViewLink), true
		}
		return nil, true
	}
	return nil, false
}

func (m *DriveModel) anyFolderLoading() bool {
	for _, st := range m.folders {
		if st != nil && st.phase == folderLoading {
			return true
		}
	}
	return false
}

type driveRow struct {
	file        api.DriveFile
	depth       int
	placeholder string
}

// visibleRows flattens the tree for rendering and cursor navigation.
// Children come only from the folder arena; the expanded set decides
// whether they appear, never whether they are fetched. Depth is
// unbounded, following however deep the Drive structure goes.
func (m *DriveModel) visibleRows() []driveRow {
	var rows []driveRow
	var walk func(files []api.DriveFile, depth int)
	walk = func(files []api.DriveFile, depth int) {
		for _, f := range files {
			rows = append(rows, driveRow{file: f, depth: depth})
			if !f.IsFolder() || !m.expanded[f.ID] {
				continue
			}
			st := m.folders[f.ID]
			switch {
			case st == nil || st.phase == folderLoading:
				rows = append(rows, driveRow{depth: depth + 1, placeholder: "Loading folder contents..."})
			case st.phase == folderError:
				rows = append(rows, driveRow{depth: depth + 1, placeholder: "Error loading folder contents"})
			case len(st.children) == 0:
				rows = append(rows, driveRow{depth: depth + 1, placeholder: "This folder is empty"})
			default:
				walk(st.children, depth+1)
			}
		}
	}
	walk(m.files, 0)
	return rows
}

func (m *DriveModel) clampCursor() {
	n := len(m.visibleRows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *DriveModel) scrollToCursor(total int) {
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
	maxOff := total - visible
	if maxOff < 0 {
		maxOff = 0
	}
	if m.offset > maxOff {
		m.offset = maxOff
	}
}

func (m *DriveModel) listHeight() int {
	// header + column header + footer hints
	return m.height - 6
}

func (m *DriveModel) View() string {
	t := m.ctx.theme

	if m.loading && len(m.files) == 0 {
		return "\n " + t.Spinner.Render(spinnerFrames[m.spinnerPos]) + " " + t.Subtitle.Render("Loading your Google Drive files...")
	}
	if m.errText != "" && len(m.files) == 0 {
		return "\n " + t.MessageErr.Render(m.errText)
	}

	var b strings.Builder
	header := t.Title.Render("Your Google Drive Files")
	refresh := t.Subtitle.Render("r to refresh")
	if m.loading {
		refresh = t.Spinner.Render(spinnerFrames[m.spinnerPos] + " Refreshing...")
	}
	b.WriteString(header + "  " + refresh + "\n")

	if len(m.files) == 0 {
		b.WriteString("\n" + t.Subtitle.Render("No files found in your Google Drive.") + "\n")
		return b.String()
	}

	nameW := m.width - 46
	if nameW < 20 {
		nameW = 20
	}
	b.WriteString(t.PaneTitle.Render(fmt.Sprintf("   %-*s %-12s %-21s %s", nameW, "Name", "Type", "Created", "Actions")) + "\n")

	rows := m.visibleRows()
	start := m.offset
	end := start + m.listHeight()
	if end > len(rows) {
		end = len(rows)
	}
	if start > len(rows) {
		start = len(rows)
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.cursor, nameW))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *DriveModel) renderRow(row driveRow, selected bool, nameW int) string {
	t := m.ctx.theme
	indent := strings.Repeat("  ", row.depth)

	if row.placeholder != "" {
		return "   " + indent + t.Placeholder.Render(row.placeholder)
	}

	f := row.file
	icon := fileIcon(f.MimeType, m.expanded[f.ID])
	name := truncateRunes(f.Name, nameW-len(indent)-3)

	nameStyle := t.ListItem
	if f.IsFolder() {
		nameStyle = t.FolderName
	}
	if selected {
		nameStyle = t.ListSel
	}

	typeLabel := mimeTypeLabel(f.MimeType)
	created := formatDriveTime(f.CreatedTime)
	open := ""
	if f.WebViewLink != "" {
		open = t.LinkHint.Render("Open")
	}

	prefix := "  "
	if selected {
		prefix = "> "
	}

	padded := indent + icon + " " + name
	gap := nameW - lipgloss.Width(padded)
	if gap < 1 {
		gap = 1
	}
	return prefix + nameStyle.Render(padded) + strings.Repeat(" ", gap) +
		t.FileMeta.Render(fmt.Sprintf(" %-12s %-21s ", typeLabel, created)) + open
}

// fileIcon mirrors the icon choices of the web UI: folders differ by
// expansion state, a few well-known types get their own icon, anything
// else is generic.
func fileIcon(mimeType string, expanded bool) string {
	switch {
	case mimeType == api.FolderMimeType:
		if expanded {
			return "📂"
		}
		return "📁"
	case mimeType == api.DocumentMimeType:
		return "📄"
	case mimeType == api.SpreadsheetMimeType:
		return "📊"
	case strings.Contains(mimeType, "image/"):
		return "🖼️"
	case strings.Contains(mimeType, "text/plain"):
		return "📝"
	default:
		return "📎"
	}
}

// mimeTypeLabel is the last dot-segment of the mime type string, e.g.
// "application/vnd.google-apps.document" -> "document".
func mimeTypeLabel(mimeType string) string {
	parts := strings.Split(mimeType, ".")
	return parts[len(parts)-1]
}

func formatDriveTime(created string) string {
	ts, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return created
	}
	return ts.Local().Format("Jan 2, 2006 3:04 PM")
}

func openLinkCmd(link string) tea.Cmd {
	return func() tea.Msg {
		_ = browser.OpenURL(link)
		return nil
	}
}
