package markup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	nethtml "golang.org/x/net/html"
)

const tabWidth = 4

func (r htmlRenderer) renderNodes(nodes []*nethtml.Node, listDepth int) []string {
	lines := make([]string, 0, len(nodes)*2)
	inlineParts := make([]string, 0, 4)
	flushInline := func() {
		text := normalizeInlineText(strings.Join(inlineParts, ""))
		inlineParts = inlineParts[:0]
		if text == "" {
			return
		}
		block := wrapText(text, r.width)
		if len(block) == 0 {
			return
		}
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}

	for _, node := range nodes {
		switch node.Type {
		case nethtml.TextNode:
			inlineParts = append(inlineParts, node.Data)
		case nethtml.ElementNode:
			if isBlockElement(node.Data) {
				flushInline()
				block := r.renderBlock(node, listDepth)
				if len(block) == 0 {
					continue
				}
				if len(lines) > 0 && lines[len(lines)-1] != "" {
					lines = append(lines, "")
				}
				lines = append(lines, block...)
				continue
			}
			inlineParts = append(inlineParts, r.renderInlineNode(node))
		}
	}
	flushInline()
	return trimBlankLines(lines)
}

func (r htmlRenderer) renderBlock(node *nethtml.Node, listDepth int) []string {
	tag := strings.ToLower(node.Data)
	switch tag {
	case "script", "style", "noscript":
		return nil
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := normalizeInlineText(r.renderInlineChildren(node))
		if !r.opts.StyleBlocks {
			return wrapText(text, r.width)
		}
		prefix := headingPrefix(int(tag[1] - '0'))
		return styleNonBlankLines(
			wrapPrefixedText(text, r.width, prefix, strings.Repeat(" ", visibleLen(prefix))),
			detailHeadingStyle,
		)
	case "p", "div", "section", "article", "main", "header", "footer", "aside", "nav":
		if hasBlockChild(node) {
			return r.renderNodes(elementChildren(node), listDepth)
		}
		text := normalizeInlineText(r.renderInlineChildren(node))
		if text != "" {
			return wrapText(text, r.width)
		}
		return r.renderNodes(elementChildren(node), listDepth)
	case "blockquote":
		return r.renderBlockquote(node, listDepth)
	case "ul":
		return r.renderList(node, false, listDepth+1)
	case "ol":
		return r.renderList(node, true, listDepth+1)
	case "table":
		return r.renderTable(node)
	case "figcaption", "caption":
		text := normalizeInlineText(r.renderInlineChildren(node))
		return wrapPrefixedText(text, r.width, "— ", "  ")
	case "figure":
		return r.renderNodes(elementChildren(node), listDepth)
	case "img":
		if r.opts.ImageMode == ImageModeNone {
			return nil
		}
		return r.renderImageLabel(node)
	case "pre":
		return r.renderPre(node)
	case "hr":
		return []string{strings.Repeat("-", min(r.width, 24))}
	case "dl":
		return r.renderDefinitionList(node, listDepth)
	case "li":
		return r.renderListItem(node, listDepth, "- ")
	default:
		text := normalizeInlineText(r.renderInlineChildren(node))
		if text != "" {
			return wrapText(text, r.width)
		}
		return r.renderNodes(elementChildren(node), listDepth)
	}
}

func (r htmlRenderer) renderBlockquote(node *nethtml.Node, listDepth int) []string {
	styled := r.opts.StyleBlocks && r.width >= 3
	inner := r
	if styled {
		inner.width = r.width - 2
	}
	lines := inner.renderNodes(elementChildren(node), listDepth)
	if len(lines) == 0 {
		text := normalizeInlineText(r.renderInlineChildren(node))
		if text == "" {
			return nil
		}
		lines = wrapText(text, inner.width)
	}
	if !styled {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, detailQuoteBar.Render("│ ")+detailQuoteText.Render(line))
	}
	return out
}

// renderPre keeps the original line structure of code blocks. Tabs are
// expanded and over-long lines are hard-wrapped rather than reflowed.
func (r htmlRenderer) renderPre(node *nethtml.Node) []string {
	text := strings.ReplaceAll(collectRawText(node), "\r\n", "\n")
	indent := ""
	if r.width > 2*tabWidth {
		indent = strings.Repeat(" ", tabWidth)
	}
	avail := r.width - len(indent)
	rawLines := strings.Split(text, "\n")
	out := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		line = strings.TrimRight(expandTabs(line), " ")
		if line == "" {
			out = append(out, "")
			continue
		}
		for _, part := range hardWrap(line, avail) {
			if r.opts.StyleBlocks {
				part = detailCodeStyle.Render(part)
			}
			out = append(out, indent+part)
		}
	}
	return trimBlankLines(out)
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func (r htmlRenderer) renderDefinitionList(node *nethtml.Node, listDepth int) []string {
	lines := make([]string, 0, 8)
	indent := strings.Repeat("  ", max(0, listDepth-1))
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != nethtml.ElementNode {
			continue
		}
		switch strings.ToLower(child.Data) {
		case "dt":
			text := normalizeInlineText(r.renderInlineChildren(child))
			if text == "" {
				continue
			}
			lines = append(lines, wrapPrefixedText(text, r.width, indent+r.bullet(1), indent+"  ")...)
		case "dd":
			text := normalizeInlineText(r.renderInlineChildren(child))
			if text == "" {
				continue
			}
			lines = append(lines, wrapPrefixedText(text, r.width, indent+"  ", indent+"  ")...)
		}
	}
	return trimBlankLines(lines)
}

func (r htmlRenderer) renderList(node *nethtml.Node, ordered bool, listDepth int) []string {
	lines := make([]string, 0, 16)
	itemIndex := 0
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != nethtml.ElementNode || strings.ToLower(child.Data) != "li" {
			continue
		}
		itemIndex++
		marker := r.bullet(listDepth)
		if ordered {
			marker = fmt.Sprintf("%d. ", itemIndex)
		}
		itemLines := r.renderListItem(child, listDepth, marker)
		if len(itemLines) == 0 {
			continue
		}
		lines = append(lines, itemLines...)
	}
	return trimBlankLines(lines)
}

func (r htmlRenderer) renderListItem(node *nethtml.Node, listDepth int, marker string) []string {
	indent := strings.Repeat("  ", max(0, listDepth-1))
	firstPrefix := indent + marker
	restPrefix := indent + strings.Repeat(" ", visibleLen(marker))
	lines := make([]string, 0, 8)

	var text strings.Builder
	var blocks []string
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode {
			tag := strings.ToLower(child.Data)
			switch {
			case tag == "ul" || tag == "ol":
				continue
			case tag == "pre" || tag == "blockquote" || tag == "table":
				blocks = append(blocks, r.renderBlock(child, listDepth)...)
				continue
			case tag == "p" || tag == "div":
				text.WriteString(r.renderInlineChildren(child))
				text.WriteString("\n")
				continue
			}
		}
		text.WriteString(r.renderInlineNode(child))
	}
	if s := normalizeInlineText(text.String()); s != "" {
		lines = append(lines, wrapPrefixedText(s, r.width, firstPrefix, restPrefix)...)
	}
	lines = append(lines, blocks...)

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != nethtml.ElementNode {
			continue
		}
		var nested []string
		switch strings.ToLower(child.Data) {
		case "ul":
			nested = r.renderList(child, false, listDepth+1)
		case "ol":
			nested = r.renderList(child, true, listDepth+1)
		}
		lines = append(lines, nested...)
	}
	return trimBlankLines(lines)
}

// wrapPrefixedText wraps text after a hanging prefix. When the prefixes
// leave no room the text is wrapped without them.
func wrapPrefixedText(text string, width int, firstPrefix, restPrefix string) []string {
	text = normalizeInlineText(text)
	if text == "" {
		return nil
	}
	if visibleLen(firstPrefix) >= width || visibleLen(restPrefix) >= width {
		return wrapText(text, width)
	}
	firstWidth := width - visibleLen(firstPrefix)
	restWidth := width - visibleLen(restPrefix)
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))
	firstLine := true
	for _, p := range paragraphs {
		lineWidth := restWidth
		if firstLine {
			lineWidth = firstWidth
		}
		for i, line := range wrapText(p, lineWidth) {
			if firstLine && i == 0 {
				out = append(out, firstPrefix+line)
				continue
			}
			out = append(out, restPrefix+line)
		}
		firstLine = false
	}
	return trimBlankLines(out)
}

func headingPrefix(level int) string {
	level = min(max(level, 1), len(detailHeadingBars))
	style := detailHeadingBars[level-1]
	return style.Render("▌") + strings.Repeat(" ", max(1, level-1))
}

func (r htmlRenderer) bullet(listDepth int) string {
	if !r.opts.StyleBlocks {
		return "- "
	}
	switch listDepth {
	case 1:
		return "• "
	case 2:
		return "◦ "
	case 3:
		return "▪ "
	default:
		return "▫ "
	}
}

func styleNonBlankLines(lines []string, style lipgloss.Style) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = line
			continue
		}
		out[i] = style.Render(line)
	}
	return out
}

func isBlockElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "section", "article", "main", "header", "footer", "aside", "nav",
		"blockquote", "ul", "ol", "li", "table", "thead", "tbody", "tfoot", "tr", "td", "th", "img",
		"dl", "dt", "dd", "pre", "figure", "figcaption", "caption", "hr":
		return true
	default:
		return false
	}
}

func hasBlockChild(node *nethtml.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode && isBlockElement(child.Data) {
			return true
		}
	}
	return false
}
