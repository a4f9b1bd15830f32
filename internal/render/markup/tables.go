package markup

import (
	"strings"

	nethtml "golang.org/x/net/html"
)

func (r htmlRenderer) renderTable(tableNode *nethtml.Node) []string {
	rows := tableRows(tableNode)
	if len(rows) == 0 {
		return nil
	}
	header := hasHeaderCell(tableNode)
	border := "|"
	if r.opts.StyleBlocks {
		border = detailTableBorder.Render("|")
	}

	lines := make([]string, 0, len(rows)+2)
	for i, row := range rows {
		cells := row
		if i == 0 && header && r.opts.StyleBlocks {
			cells = make([]string, len(row))
			for idx := range row {
				cells[idx] = styleWords(row[idx], detailTableHeader)
			}
		}
		cellLine := border + " " + strings.Join(cells, " "+border+" ") + " " + border
		lines = append(lines, wrapText(cellLine, r.width)...)
		if i == 0 && header {
			sep := make([]string, len(row))
			for j := range sep {
				sep[j] = "---"
			}
			sepLine := border + " " + strings.Join(sep, " "+border+" ") + " " + border
			lines = append(lines, wrapText(sepLine, r.width)...)
		}
	}
	return trimBlankLines(lines)
}

func (r htmlRenderer) renderImageLabel(imgNode *nethtml.Node) []string {
	if imgNode == nil {
		return nil
	}
	text := normalizeInlineText(nodeAttr(imgNode, "alt"))
	if text == "" {
		text = normalizeInlineText(nodeAttr(imgNode, "title"))
	}
	if !r.opts.StyleBlocks {
		line := "[image]"
		if text != "" {
			line = "[image: " + text + "]"
		}
		return wrapText(line, r.width)
	}
	line := detailImageLabel.Render("◌◌◌ Image")
	if text != "" {
		line += " " + styleWords(text, detailImageText)
	}
	return wrapText(line, r.width)
}

func tableRows(tableNode *nethtml.Node) [][]string {
	rows := make([][]string, 0, 8)
	renderer := htmlRenderer{width: unboundedWidth}
	var walk func(*nethtml.Node)
	walk = func(node *nethtml.Node) {
		if node == nil {
			return
		}
		if node.Type == nethtml.ElementNode && strings.ToLower(node.Data) == "tr" {
			row := make([]string, 0, 4)
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != nethtml.ElementNode {
					continue
				}
				tag := strings.ToLower(c.Data)
				if tag != "th" && tag != "td" {
					continue
				}
				cell := normalizeInlineText(renderer.renderInlineChildren(c))
				row = append(row, strings.ReplaceAll(cell, "\n", " "))
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(tableNode)
	return rows
}

func hasHeaderCell(node *nethtml.Node) bool {
	if node == nil {
		return false
	}
	if node.Type == nethtml.ElementNode && strings.ToLower(node.Data) == "th" {
		return true
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if hasHeaderCell(child) {
			return true
		}
	}
	return false
}
