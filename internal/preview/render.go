package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

type textState struct {
	bold, italic, underline int
	listDepth               int
}

func (s textState) style() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(s.bold > 0).
		Italic(s.italic > 0).
		Underline(s.underline > 0)
}

// Render sanitizes fragment and converts it to styled terminal text.
func Render(fragment string, width int) string {
	z := html.NewTokenizer(strings.NewReader(Sanitize(fragment)))

	var (
		b     strings.Builder
		state textState
	)
	newline := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()

		switch tt {
		case html.TextToken:
			text := collapseSpace(tok.Data)
			if strings.TrimSpace(text) == "" {
				continue
			}
			if b.Len() == 0 || strings.HasSuffix(b.String(), "\n") {
				text = strings.TrimLeft(text, " ")
			}
			b.WriteString(state.style().Render(text))

		case html.StartTagToken, html.SelfClosingTagToken:
			switch tok.Data {
			case "b", "strong", "h1", "h2", "h3", "h4":
				if isBlock(tok.Data) {
					newline()
				}
				state.bold++
			case "i", "em":
				state.italic++
			case "u":
				state.underline++
			case "br":
				b.WriteString("\n")
			case "p", "div":
				newline()
			case "ul", "ol":
				newline()
				state.listDepth++
			case "li":
				newline()
				b.WriteString(strings.Repeat("  ", max(state.listDepth-1, 0)) + "• ")
			}

		case html.EndTagToken:
			switch tok.Data {
			case "b", "strong", "h1", "h2", "h3", "h4":
				state.bold = max(state.bold-1, 0)
				if isBlock(tok.Data) {
					newline()
				}
			case "i", "em":
				state.italic = max(state.italic-1, 0)
			case "u":
				state.underline = max(state.underline-1, 0)
			case "p", "div", "li":
				newline()
			case "ul", "ol":
				state.listDepth = max(state.listDepth-1, 0)
				newline()
			}
		}
	}

	out := strings.TrimRight(b.String(), "\n ")
	if width > 0 {
		out = lipgloss.NewStyle().Width(width).Render(out)
	}
	return out
}

func isBlock(tag string) bool {
	return strings.HasPrefix(tag, "h")
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if s[0] == ' ' || s[0] == '\n' || s[0] == '\t' {
		out = " " + out
	}
	if last := s[len(s)-1]; last == ' ' || last == '\n' || last == '\t' {
		out += " "
	}
	return out
}
