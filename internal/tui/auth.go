package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"docme/internal/auth"
	"docme/internal/session"
)

type sessionMsg struct {
	sess *session.Session
	err  error
}

type driveConnectMsg struct {
	err error
}

const loginTimeout = 3 * time.Minute

// AuthModel is the account screen: sign in (either flow), connect
// Google Drive, sign out.
type AuthModel struct {
	ctx *appCtx

	cursor int
	busy   bool
	status string

	width  int
	height int

	spinnerPos int
}

func NewAuthModel(ctx *appCtx) *AuthModel {
	return &AuthModel{ctx: ctx, width: 100, height: 30}
}

func (m *AuthModel) Init() tea.Cmd {
	return nil
}

func (m *AuthModel) menu() []string {
	if m.ctx.sess.Valid() {
		return []string{"Connect Google Drive", "Logout"}
	}
	return []string{"Sign in with Google", "Sign in with Google (direct)"}
}

func (m *AuthModel) backendLogin() tea.Cmd {
	client := m.ctx.client
	addr := m.ctx.cfg.CallbackAddr
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		sess, err := auth.BackendLogin(ctx, client, addr)
		return sessionMsg{sess: sess, err: err}
	}, spinTick())
}

func (m *AuthModel) googleLogin() tea.Cmd {
	cfg := m.ctx.cfg
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		sess, err := auth.GoogleLogin(ctx, cfg)
		return sessionMsg{sess: sess, err: err}
	}, spinTick())
}

func (m *AuthModel) connectDrive() tea.Cmd {
	client := m.ctx.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		url, err := client.AuthURL(ctx)
		if err != nil {
			return driveConnectMsg{err: err}
		}
		return driveConnectMsg{err: browser.OpenURL(url)}
	}
}

func (m *AuthModel) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil, true

	case sessionMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Sign-in failed: " + msg.err.Error()
			return nil, true
		}
		m.status = ""
		// The shell owns the session; it consumes this message too.
		return nil, false

	case driveConnectMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Could not start Google Drive authorization: " + msg.err.Error()
		} else {
			m.status = "Continue in your browser to grant Drive access."
		}
		return nil, true

	case spinMsg:
		if m.busy {
			m.spinnerPos = (m.spinnerPos + 1) % len(spinnerFrames)
			return spinTick(), true
		}
		return nil, true

	case tea.KeyMsg:
		if m.busy {
			return nil, true
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return nil, true
		case "down", "j":
			if m.cursor < len(m.menu())-1 {
				m.cursor++
			}
			return nil, true
		case "enter":
			return m.choose(), true
		}
	}
	return nil, false
}

func (m *AuthModel) choose() tea.Cmd {
	if m.ctx.sess.Valid() {
		switch m.cursor {
		case 0:
			m.busy = true
			m.status = "Waiting for Google Drive authorization..."
			return m.connectDrive()
		case 1:
			return logoutCmd()
		}
		return nil
	}
	switch m.cursor {
	case 0:
		m.busy = true
		m.status = "Waiting for sign-in in your browser..."
		return m.backendLogin()
	case 1:
		m.busy = true
		m.status = "Waiting for sign-in in your browser..."
		return m.googleLogin()
	}
	return nil
}

func (m *AuthModel) View() string {
	t := m.ctx.theme
	var b strings.Builder

	if m.ctx.sess.Valid() {
		b.WriteString(t.Title.Render("Welcome, "+m.ctx.sess.Who()) + "\n\n")
	} else {
		b.WriteString(t.Title.Render("Welcome to DocMe") + "\n")
		b.WriteString(t.Subtitle.Render("Sign in to access your documents") + "\n\n")
	}

	for i, item := range m.menu() {
		prefix := "  "
		style := t.ListItem
		if i == m.cursor {
			prefix = "> "
			style = t.ListSel
		}
		b.WriteString(prefix + style.Render(item) + "\n")
	}

	if m.busy {
		b.WriteString("\n" + t.Spinner.Render(spinnerFrames[m.spinnerPos]) + " " + t.Subtitle.Render(m.status) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + t.Message.Render(m.status) + "\n")
	}
	return b.String()
}
