package markup

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	nethtml "golang.org/x/net/html"
)

var (
	reHTTPURL = regexp.MustCompile(`https?://[^\s)\x1b]+`)
	reSGR     = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

// unboundedWidth is used when the caller wants the text on as few lines as
// possible, e.g. to flatten a title before truncating it.
const unboundedWidth = 1 << 20

type ImageMode int

const (
	ImageModeLabel ImageMode = iota
	ImageModeNone
)

type Options struct {
	StyleLinks  bool
	StyleBlocks bool
	ImageMode   ImageMode
}

// DefaultOptions is used by the interactive detail view.
var DefaultOptions = Options{
	StyleLinks:  true,
	StyleBlocks: true,
	ImageMode:   ImageModeLabel,
}

// PlainOptions produces text without any escape sequences.
var PlainOptions = Options{
	ImageMode: ImageModeLabel,
}

func withDefaults(opts Options) Options {
	out := opts
	if out.ImageMode != ImageModeLabel && out.ImageMode != ImageModeNone {
		out.ImageMode = DefaultOptions.ImageMode
	}
	return out
}

type htmlRenderer struct {
	width int
	opts  Options
}

// Wrap strips all markup from raw and reflows the remaining text so that no
// line is wider than width display columns. Lines break at whitespace; a
// word wider than width is split across lines.
func Wrap(raw string, width int) []string {
	return Lines(raw, width, PlainOptions)
}

// Lines is Wrap with rendering options. Styling never changes the visible
// width of a line.
func Lines(raw string, width int, opts Options) []string {
	raw = strings.TrimSpace(StripControl(raw))
	if raw == "" {
		return nil
	}
	width = max(1, width)
	opts = withDefaults(opts)

	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return wrapText(strings.TrimSpace(StripControl(nethtml.UnescapeString(raw))), width)
	}
	body := findBodyNode(doc)
	if body == nil {
		return wrapText(strings.TrimSpace(StripControl(nethtml.UnescapeString(raw))), width)
	}
	// Entities are decoded by the parser, so controls are dropped again here.
	stripControlTree(body)
	renderer := htmlRenderer{width: width, opts: opts}
	lines := trimBlankLines(renderer.renderNodes(elementChildren(body), 0))
	if opts.StyleLinks {
		lines = styleLinks(lines)
	}
	return lines
}

// Text flattens raw into a single plain line with collapsed whitespace.
func Text(raw string) string {
	lines := Lines(raw, unboundedWidth, Options{ImageMode: ImageModeNone})
	return strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
}

func trimBlankLines(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines) - 1
	for end >= start && strings.TrimSpace(lines[end]) == "" {
		end--
	}
	if end < start {
		return nil
	}
	out := make([]string, 0, end-start+1)
	prevBlank := false
	for i := start; i <= end; i++ {
		blank := strings.TrimSpace(lines[i]) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, lines[i])
		prevBlank = blank
	}
	return out
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		lineWidth := 0
		for _, word := range words {
			wordWidth := visibleLen(word)
			if wordWidth > width {
				if line != "" {
					out = append(out, line)
					line, lineWidth = "", 0
				}
				chunks := splitAtWidth(ansi.Strip(word), width)
				out = append(out, chunks[:len(chunks)-1]...)
				word = chunks[len(chunks)-1]
				wordWidth = visibleLen(word)
			}

			if line == "" {
				line, lineWidth = word, wordWidth
				continue
			}
			if lineWidth+1+wordWidth <= width {
				line += " " + word
				lineWidth += 1 + wordWidth
				continue
			}
			out = append(out, line)
			line, lineWidth = word, wordWidth
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}

// splitAtWidth cuts s into chunks of at most width columns. A glyph wider
// than the whole line is replaced by '?'.
func splitAtWidth(s string, width int) []string {
	chunks := make([]string, 0, runewidth.StringWidth(s)/max(1, width)+1)
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw > width {
			r, rw = '?', 1
		}
		if used > 0 && used+rw > width {
			chunks = append(chunks, b.String())
			b.Reset()
			used = 0
		}
		b.WriteRune(r)
		used += rw
	}
	if b.Len() > 0 || len(chunks) == 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}

// hardWrap splits a preformatted line without touching its whitespace.
func hardWrap(line string, width int) []string {
	if visibleLen(line) <= width {
		return []string{line}
	}
	return splitAtWidth(line, width)
}

// StripControl drops C0 control characters other than tab and newline, DEL
// and the C1 range, so remote text cannot carry terminal escape sequences.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, s)
}

func stripControlTree(node *nethtml.Node) {
	if node.Type == nethtml.TextNode {
		node.Data = StripControl(node.Data)
	}
	for i := range node.Attr {
		node.Attr[i].Val = StripControl(node.Attr[i].Val)
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		stripControlTree(child)
	}
}

func visibleLen(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func styleLinks(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = styleLinksInLine(line)
	}
	return out
}

// styleLinksInLine only touches URLs outside spans that are already styled,
// e.g. a URL inside inline code keeps the code style.
func styleLinksInLine(line string) string {
	linkify := func(s string) string {
		return reHTTPURL.ReplaceAllStringFunc(s, func(u string) string { return detailLinkURL.Render(u) })
	}
	if !strings.Contains(line, "\x1b") {
		return linkify(line)
	}

	var b strings.Builder
	styled := false
	last := 0
	for _, loc := range reSGR.FindAllStringIndex(line, -1) {
		if seg := line[last:loc[0]]; styled {
			b.WriteString(seg)
		} else {
			b.WriteString(linkify(seg))
		}
		code := line[loc[0]:loc[1]]
		b.WriteString(code)
		styled = code != "\x1b[0m" && code != "\x1b[m"
		last = loc[1]
	}
	if styled {
		b.WriteString(line[last:])
	} else {
		b.WriteString(linkify(line[last:]))
	}
	return b.String()
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}

func elementChildren(node *nethtml.Node) []*nethtml.Node {
	children := make([]*nethtml.Node, 0, 4)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.TextNode && strings.TrimSpace(child.Data) == "" {
			continue
		}
		children = append(children, child)
	}
	return children
}

func nodeAttr(node *nethtml.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func collectRawText(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectRawText(child))
	}
	return b.String()
}
