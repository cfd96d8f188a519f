package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

type ThemeName string

const (
	ThemePorcelain ThemeName = "porcelain"
	ThemeMidnight  ThemeName = "midnight"
)

type Theme struct {
	Name ThemeName

	// Colors
	TextPrimary lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	TextFaint   lipgloss.AdaptiveColor

	Accent   lipgloss.AdaptiveColor
	Success  lipgloss.AdaptiveColor
	Warn     lipgloss.AdaptiveColor
	Error    lipgloss.AdaptiveColor
	Border   lipgloss.AdaptiveColor
	BorderHi lipgloss.AdaptiveColor

	// Styles
	NavBar     lipgloss.Style
	NavTitle   lipgloss.Style
	NavItem    lipgloss.Style
	NavUser    lipgloss.Style
	Footer     lipgloss.Style
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Message    lipgloss.Style
	MessageErr lipgloss.Style
	MessageOK  lipgloss.Style

	InputBox  lipgloss.Style
	InputBoxF lipgloss.Style
	Pane      lipgloss.Style
	PaneTitle lipgloss.Style
	Spinner   lipgloss.Style

	ListItem    lipgloss.Style
	ListSel     lipgloss.Style
	FolderName  lipgloss.Style
	FileMeta    lipgloss.Style
	Placeholder lipgloss.Style
	LinkHint    lipgloss.Style
}

func NewTheme(name string) Theme {
	if env := os.Getenv("DOCME_THEME"); env != "" {
		name = env
	}
	if os.Getenv("DOCME_NO_COLOR") == "1" || os.Getenv("NO_COLOR") != "" {
		return newNoColorTheme()
	}
	switch ThemeName(name) {
	case ThemeMidnight:
		return newMidnightTheme()
	default:
		return newPorcelainTheme()
	}
}

func (t *Theme) buildStyles() {
	t.NavBar = lipgloss.NewStyle().Foreground(t.TextMuted).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(t.Border)
	t.NavTitle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.NavItem = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.NavUser = lipgloss.NewStyle().Foreground(t.TextFaint)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.Subtitle = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Message = lipgloss.NewStyle().Foreground(t.Warn)
	t.MessageErr = lipgloss.NewStyle().Foreground(t.Error)
	t.MessageOK = lipgloss.NewStyle().Foreground(t.Success)

	t.InputBox = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.InputBoxF = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)
	t.Pane = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.PaneTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextMuted)
	t.Spinner = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)

	t.ListItem = lipgloss.NewStyle().Foreground(t.TextPrimary)
	t.ListSel = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.FolderName = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.FileMeta = lipgloss.NewStyle().Foreground(t.TextFaint)
	t.Placeholder = lipgloss.NewStyle().Italic(true).Foreground(t.TextMuted)
	t.LinkHint = lipgloss.NewStyle().Underline(true).Foreground(t.Accent)
}

func newNoColorTheme() Theme {
	t := Theme{
		Name:        "no-color",
		TextPrimary: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#333333", Dark: "#dddddd"},
		TextFaint:   lipgloss.AdaptiveColor{Light: "#555555", Dark: "#bbbbbb"},
		Accent:      lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Success:     lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Warn:        lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Error:       lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Border:      lipgloss.AdaptiveColor{Light: "#555555", Dark: "#777777"},
		BorderHi:    lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
	}
	t.buildStyles()
	return t
}

func newPorcelainTheme() Theme {
	t := Theme{
		Name:        ThemePorcelain,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#1d2433", Dark: "#f2f2f2"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#4a5568", Dark: "#c7c7c7"},
		TextFaint:   lipgloss.AdaptiveColor{Light: "#718096", Dark: "#9aa0a6"},
		Accent:      lipgloss.AdaptiveColor{Light: "#1f6feb", Dark: "#7aa2ff"},
		Success:     lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#46d1b7"},
		Warn:        lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f4b27d"},
		Error:       lipgloss.AdaptiveColor{Light: "#b42318", Dark: "#ff7a7a"},
		Border:      lipgloss.AdaptiveColor{Light: "#cbd5e0", Dark: "#3a3a3a"},
		BorderHi:    lipgloss.AdaptiveColor{Light: "#1f6feb", Dark: "#7aa2ff"},
	}
	t.buildStyles()
	return t
}

func newMidnightTheme() Theme {
	t := Theme{
		Name:        ThemeMidnight,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#111827", Dark: "#eaeaea"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#374151", Dark: "#b7b7b7"},
		TextFaint:   lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#8d8d8d"},
		Accent:      lipgloss.AdaptiveColor{Light: "#0ea5e9", Dark: "#5cc8ff"},
		Success:     lipgloss.AdaptiveColor{Light: "#059669", Dark: "#46d1b7"},
		Warn:        lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#f4b27d"},
		Error:       lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#ff7a7a"},
		Border:      lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#2a2a2a"},
		BorderHi:    lipgloss.AdaptiveColor{Light: "#0ea5e9", Dark: "#5cc8ff"},
	}
	t.buildStyles()
	return t
}
