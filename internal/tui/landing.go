package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// LandingModel is the signed-out front page.
type LandingModel struct {
	ctx    *appCtx
	width  int
	height int
}

func NewLandingModel(ctx *appCtx) *LandingModel {
	return &LandingModel{ctx: ctx, width: 100, height: 30}
}

func (m *LandingModel) Init() tea.Cmd { return nil }

func (m *LandingModel) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil, true
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return navigateCmd(screenAuth, ""), true
		}
	}
	return nil, false
}

func (m *LandingModel) View() string {
	t := m.ctx.theme
	var b strings.Builder
	b.WriteString("\n" + t.Title.Render("Welcome to DocMe") + "\n")
	b.WriteString(t.Subtitle.Render("Your ultimate letter editing and management tool.") + "\n\n")
	b.WriteString("  ✍️  Rich text editing with bold, italic, lists, and more.\n")
	b.WriteString("  💾 Save drafts locally before uploading to Google Drive.\n")
	b.WriteString("  ✨ User-friendly UI with minimal distractions.\n\n")
	b.WriteString(t.LinkHint.Render("Press enter to sign in with Google") + "\n")
	return b.String()
}
