package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	nethtml "golang.org/x/net/html"
)

func (r htmlRenderer) renderInlineChildren(node *nethtml.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(r.renderInlineNode(child))
	}
	return b.String()
}

func (r htmlRenderer) renderInlineNode(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	switch node.Type {
	case nethtml.TextNode:
		return node.Data
	case nethtml.ElementNode:
		tag := strings.ToLower(node.Data)
		switch tag {
		case "script", "style", "noscript", "img":
			return ""
		case "br":
			return "\n"
		case "a":
			text := normalizeInlineText(r.renderInlineChildren(node))
			href := nodeAttr(node, "href")
			switch {
			case href == "" || strings.HasPrefix(href, "#"):
				return text
			case text == "":
				return href
			case strings.EqualFold(text, href):
				return href
			default:
				return text + " (" + href + ")"
			}
		case "q":
			text := normalizeInlineText(r.renderInlineChildren(node))
			if text == "" {
				return ""
			}
			return `"` + text + `"`
		case "code", "kbd", "samp":
			text := normalizeInlineText(r.renderInlineChildren(node))
			if text == "" || !r.opts.StyleBlocks {
				return text
			}
			return styleWords(text, detailCodeStyle)
		default:
			return r.renderInlineChildren(node)
		}
	default:
		return ""
	}
}

// normalizeInlineText collapses runs of whitespace inside each line and
// drops lines that end up empty. Entities are already decoded by the parser.
func normalizeInlineText(s string) string {
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return strings.Join(out, "\n")
}

// styleWords renders each word on its own so a style never spans a line
// break introduced by wrapping.
func styleWords(text string, style lipgloss.Style) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		words := strings.Fields(line)
		for j, w := range words {
			words[j] = style.Render(w)
		}
		lines[i] = strings.Join(words, " ")
	}
	return strings.Join(lines, "\n")
}
