package tui

import "github.com/charmbracelet/lipgloss"

func truncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	if maxRunes <= 1 {
		return string(r[:maxRunes])
	}
	return string(r[:maxRunes-1]) + "…"
}

func visibleWidth(s string) int {
	return lipgloss.Width(s)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
