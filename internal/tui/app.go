// Package tui implements the interactive screens. One file per screen;
// every screen shares the appCtx session/client/theme context and
// reports unhandled messages back to the shell.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"docme/internal/api"
	"docme/internal/app"
	"docme/internal/session"
)

type screen int

const (
	screenLanding screen = iota
	screenAuth
	screenEditor
	screenDocuments
	screenDrive
)

// appCtx is the one session-context object threaded to every screen:
// populated on sign-in, cleared on sign-out, read everywhere else.
type appCtx struct {
	cfg    app.Config
	log    *app.Logger
	client *api.Client
	store  *session.Store
	theme  Theme
	sess   *session.Session
}

type navigateMsg struct {
	to screen
	id string
}

type logoutMsg struct{}

func navigateCmd(to screen, id string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to, id: id} }
}

func logoutCmd() tea.Cmd {
	return func() tea.Msg { return logoutMsg{} }
}

// spinner shared across screens
type spinMsg struct{}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinTick() tea.Cmd {
	return tea.Tick(90*time.Millisecond, func(_ time.Time) tea.Msg { return spinMsg{} })
}

type screenModel interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Cmd, bool)
	View() string
}

// Model is the shell: it routes between screens, owns the session, and
// renders the nav bar when a user is signed in.
type Model struct {
	ctx    *appCtx
	screen screen
	active screenModel
	keys   keyMap

	width  int
	height int
}

func New(cfg app.Config, log *app.Logger, store *session.Store) *Model {
	ctx := &appCtx{
		cfg:   cfg,
		log:   log,
		store: store,
		theme: NewTheme(cfg.Theme),
	}
	sess, err := store.Load()
	if err != nil {
		log.Error("failed to load stored session", map[string]interface{}{"error": err.Error()})
	}
	ctx.sess = sess
	ctx.client = api.NewClient(cfg.APIBaseURL, func() string {
		if ctx.sess.Valid() {
			return ctx.sess.Token
		}
		return ""
	}, log)

	m := &Model{
		ctx:    ctx,
		keys:   defaultKeyMap(),
		width:  100,
		height: 30,
	}
	m.screen = screenLanding
	m.active = NewLandingModel(ctx)
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.active.Init()
}

// navigate swaps in a fresh screen model, so entering a screen always
// refetches the way a web route mount does. Screens past the landing
// and auth pages require a session.
func (m *Model) navigate(to screen, id string) tea.Cmd {
	if to != screenLanding && to != screenAuth && !m.ctx.sess.Valid() {
		to = screenLanding
	}
	m.screen = to
	switch to {
	case screenAuth:
		m.active = NewAuthModel(m.ctx)
	case screenEditor:
		m.active = NewEditorModel(m.ctx, id)
	case screenDocuments:
		m.active = NewDocumentsModel(m.ctx)
	case screenDrive:
		m.active = NewDriveModel(m.ctx)
	default:
		m.active = NewLandingModel(m.ctx)
	}
	return tea.Batch(m.active.Init(), m.resizeCmd())
}

func (m *Model) resizeCmd() tea.Cmd {
	w, h := m.width, m.height
	return func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h - 2} }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// reserve the nav bar row for the child
		child := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2}
		cmd, _ := m.active.Update(child)
		return m, cmd

	case navigateMsg:
		return m, m.navigate(msg.to, msg.id)

	case logoutMsg:
		if err := m.ctx.store.Clear(); err != nil {
			m.ctx.log.Error("failed to clear session", map[string]interface{}{"error": err.Error()})
		}
		m.ctx.sess = nil
		return m, m.navigate(screenLanding, "")

	case sessionMsg:
		if msg.err == nil && msg.sess.Valid() {
			if err := m.ctx.store.Save(msg.sess); err != nil {
				m.ctx.log.Error("failed to persist session", map[string]interface{}{"error": err.Error()})
			}
			m.ctx.sess = msg.sess
			m.ctx.log.Info("signed in", map[string]interface{}{"user": msg.sess.UserID})
			// Same side effect as the web client: land in the editor.
			return m, m.navigate(screenEditor, "")
		}
		cmd, _ := m.active.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(msg, m.keys.NewDoc):
			return m, m.navigate(screenEditor, "")
		case key.Matches(msg, m.keys.Documents):
			return m, m.navigate(screenDocuments, "")
		case key.Matches(msg, m.keys.Drive):
			return m, m.navigate(screenDrive, "")
		case key.Matches(msg, m.keys.Auth):
			return m, m.navigate(screenAuth, "")
		case key.Matches(msg, m.keys.Back) && m.screen != screenLanding:
			if cmd, handled := m.active.Update(msg); handled {
				return m, cmd
			}
			if m.ctx.sess.Valid() {
				return m, m.navigate(screenDocuments, "")
			}
			return m, m.navigate(screenLanding, "")
		}
	}

	cmd, _ := m.active.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder
	if m.ctx.sess.Valid() {
		b.WriteString(m.renderNav() + "\n")
	}
	b.WriteString(m.active.View())
	return b.String()
}

func (m *Model) renderNav() string {
	t := m.ctx.theme
	items := []string{
		t.NavTitle.Render("DocMe"),
		m.navItem("New Document", screenEditor),
		m.navItem("My Documents", screenDocuments),
		m.navItem("Google Drive Files", screenDrive),
	}
	left := strings.Join(items, t.NavItem.Render(" │ "))
	who := t.NavUser.Render(m.ctx.sess.Who())
	gap := m.width - visibleWidth(left) - visibleWidth(who) - 2
	if gap < 1 {
		gap = 1
	}
	return t.NavBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + who)
}

func (m *Model) navItem(label string, s screen) string {
	t := m.ctx.theme
	if m.screen == s {
		return t.NavTitle.Render(label)
	}
	return t.NavItem.Render(label)
}

// Run wires the shell into a bubbletea program.
func Run(cfg app.Config, log *app.Logger, store *session.Store) error {
	p := tea.NewProgram(New(cfg, log, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
