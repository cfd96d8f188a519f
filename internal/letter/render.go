// Package letter converts document content between the three forms the
// app needs: the markdown the user types, the HTML the backend stores,
// and the styled text shown in the preview pane.
package letter

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	h1Regex      = regexp.MustCompile(`(?s)<h1(?: id="[^"]*")?>(.*?)</h1>`)
	h2Regex      = regexp.MustCompile(`(?s)<h2(?: id="[^"]*")?>(.*?)</h2>`)
	h3Regex      = regexp.MustCompile(`(?s)<h3(?: id="[^"]*")?>(.*?)</h3>`)
	strongRegex  = regexp.MustCompile(`(?s)<(?:strong|b)>(.*?)</(?:strong|b)>`)
	emRegex      = regexp.MustCompile(`(?s)<(?:em|i)>(.*?)</(?:em|i)>`)
	underRegex   = regexp.MustCompile(`(?s)<u>(.*?)</u>`)
	strikeRegex  = regexp.MustCompile(`(?s)<(?:s|del|strike)>(.*?)</(?:s|del|strike)>`)
	linkRegex    = regexp.MustCompile(`<a href="([^"]*)"[^>]*>(.*?)</a>`)
	blockquoteRe = regexp.MustCompile(`(?s)<blockquote>(.*?)</blockquote>`)
	ulRegex      = regexp.MustCompile(`(?s)<ul>(.*?)</ul>`)
	olRegex      = regexp.MustCompile(`(?s)<ol>(.*?)</ol>`)
	liRegex      = regexp.MustCompile(`(?s)<li>(.*?)</li>`)
	htmlTagRegex = regexp.MustCompile(`<[^>]+>`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

var md = goldmark.New(
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithXHTML(),
	),
	goldmark.WithExtensions(
		extension.GFM,
		extension.Strikethrough,
	),
)

// ToHTML converts the markdown composed in the editor into the HTML
// the backend stores. On a conversion failure the raw text is kept;
// the backend treats content as opaque anyway.
func ToHTML(src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return src
	}
	return strings.TrimSpace(buf.String())
}

// ToEditable turns stored HTML back into markdown-ish plain text for
// the textarea. Lossy for markup outside the editor's vocabulary; the
// surviving plain text is always editable.
func ToEditable(htmlContent string) string {
	result := strings.ReplaceAll(htmlContent, "\r\n", "\n")

	result = h1Regex.ReplaceAllString(result, "# $1\n")
	result = h2Regex.ReplaceAllString(result, "## $1\n")
	result = h3Regex.ReplaceAllString(result, "### $1\n")
	result = strongRegex.ReplaceAllString(result, "**$1**")
	result = emRegex.ReplaceAllString(result, "*$1*")
	result = strikeRegex.ReplaceAllString(result, "~~$1~~")
	result = underRegex.ReplaceAllString(result, "$1")
	result = linkRegex.ReplaceAllString(result, "[$2]($1)")

	result = blockquoteRe.ReplaceAllStringFunc(result, func(m string) string {
		matches := blockquoteRe.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		var b strings.Builder
		inner := htmlTagRegex.ReplaceAllString(matches[1], "")
		for _, line := range strings.Split(strings.TrimSpace(inner), "\n") {
			b.WriteString("> " + strings.TrimSpace(line) + "\n")
		}
		return b.String()
	})

	result = ulRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := ulRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		var b strings.Builder
		for _, item := range liRegex.FindAllStringSubmatch(matches[1], -1) {
			if len(item) >= 2 {
				b.WriteString("- " + strings.TrimSpace(htmlTagRegex.ReplaceAllString(item[1], "")) + "\n")
			}
		}
		return b.String()
	})

	result = olRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := olRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		var b strings.Builder
		for i, item := range liRegex.FindAllStringSubmatch(matches[1], -1) {
			if len(item) >= 2 {
				b.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.TrimSpace(htmlTagRegex.ReplaceAllString(item[1], ""))))
			}
		}
		return b.String()
	})

	result = strings.ReplaceAll(result, "<p>", "")
	result = strings.ReplaceAll(result, "</p>", "\n\n")
	result = strings.ReplaceAll(result, "<br>", "\n")
	result = strings.ReplaceAll(result, "<br/>", "\n")
	result = strings.ReplaceAll(result, "<br />", "\n")

	result = htmlTagRegex.ReplaceAllString(result, "")
	result = decodeHTMLEntities(result)
	result = multiNewline.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// Renderer produces the styled terminal preview of stored HTML.
type Renderer struct {
	heading lipgloss.Style
	subhead lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style
	link    lipgloss.Style
	quote   lipgloss.Style
	bullet  lipgloss.Style
}

func NewRenderer() *Renderer {
	return &Renderer{
		heading: lipgloss.NewStyle().Bold(true).Underline(true),
		subhead: lipgloss.NewStyle().Bold(true),
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		link:    lipgloss.NewStyle().Underline(true),
		quote:   lipgloss.NewStyle().Faint(true).PaddingLeft(2),
		bullet:  lipgloss.NewStyle(),
	}
}

// Render converts stored HTML into styled terminal text wrapped to
// width.
func (r *Renderer) Render(htmlContent string, width int) string {
	if width < 20 {
		width = 20
	}
	result := htmlContent

	result = h1Regex.ReplaceAllStringFunc(result, func(m string) string {
		matches := h1Regex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		return r.heading.Width(width).Render(stripTags(matches[1])) + "\n"
	})
	result = h2Regex.ReplaceAllStringFunc(result, func(m string) string {
		matches := h2Regex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		return r.subhead.Width(width).Render(stripTags(matches[1])) + "\n"
	})
	result = h3Regex.ReplaceAllStringFunc(result, func(m string) string {
		matches := h3Regex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		return r.subhead.Width(width).Render(stripTags(matches[1])) + "\n"
	})
	result = strongRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := strongRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		return r.bold.Render(matches[1])
	})
	result = emRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := emRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		return r.italic.Render(matches[1])
	})
	result = linkRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := linkRegex.FindStringSubmatch(m)
		if len(matches) < 3 {
			return m
		}
		return r.link.Render(fmt.Sprintf("%s (%s)", matches[2], matches[1]))
	})
	result = blockquoteRe.ReplaceAllStringFunc(result, func(m string) string {
		matches := blockquoteRe.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		return r.quote.Width(width).Render(strings.TrimSpace(stripTags(matches[1]))) + "\n"
	})
	result = ulRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := ulRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		var list strings.Builder
		for _, item := range liRegex.FindAllStringSubmatch(matches[1], -1) {
			if len(item) >= 2 {
				list.WriteString(r.bullet.Render("  • ") + stripTags(item[1]) + "\n")
			}
		}
		return list.String()
	})
	result = olRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := olRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		var list strings.Builder
		for i, item := range liRegex.FindAllStringSubmatch(matches[1], -1) {
			if len(item) >= 2 {
				list.WriteString(r.bullet.Render(fmt.Sprintf("  %d. ", i+1)) + stripTags(item[1]) + "\n")
			}
		}
		return list.String()
	})

	result = strings.ReplaceAll(result, "<p>", "")
	result = strings.ReplaceAll(result, "</p>", "\n")
	result = strings.ReplaceAll(result, "<br>", "\n")
	result = strings.ReplaceAll(result, "<br/>", "\n")
	result = strings.ReplaceAll(result, "<br />", "\n")

	result = htmlTagRegex.ReplaceAllString(result, "")
	result = decodeHTMLEntities(result)
	result = multiNewline.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func stripTags(s string) string {
	return htmlTagRegex.ReplaceAllString(s, "")
}

func decodeHTMLEntities(s string) string {
	replacements := []struct {
		old string
		new string
	}{
		{"&amp;", "&"},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
		{"&#39;", "'"},
		{"&nbsp;", " "},
		{"&mdash;", "—"},
		{"&ndash;", "–"},
		{"&hellip;", "..."},
		{"&#x27;", "'"},
		{"&#x60;", "`"},
	}
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.old, r.new)
	}
	return s
}
