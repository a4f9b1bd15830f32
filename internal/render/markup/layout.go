package markup

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// TruncateTitle flattens raw to one plain line and shortens it to width
// columns. A shortened title always occupies exactly width columns and ends
// in "...".
func TruncateTitle(raw string, width int) string {
	if width < 1 {
		return ""
	}
	plain := Text(raw)
	if runewidth.StringWidth(plain) <= width {
		return plain
	}
	if width <= len(ellipsis) {
		return strings.Repeat(".", width)
	}

	limit := width - len(ellipsis)
	var b strings.Builder
	used := 0
	for _, r := range plain {
		rw := runewidth.RuneWidth(r)
		if used+rw > limit {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	// A wide glyph that straddles the cut leaves a gap.
	b.WriteString(strings.Repeat(" ", limit-used))
	b.WriteString(ellipsis)
	return b.String()
}

// ListPrefixWidth is the width of the "N. " prefix for the item at index.
func ListPrefixWidth(index int) int {
	return len(strconv.Itoa(index+1)) + 2
}

// RowTitleWidth is the room left for a title after its list prefix.
func RowTitleWidth(avail, index int) int {
	return max(1, avail-ListPrefixWidth(index))
}

// DetailWrapWidth leaves a margin of four columns in the detail view.
func DetailWrapWidth(termWidth int) int {
	return max(1, termWidth-4)
}

func Rule(width int) string {
	return strings.Repeat("─", max(1, width))
}
