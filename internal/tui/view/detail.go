package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/glabrego/stackq-cli/internal/render/markup"
	"github.com/glabrego/stackq-cli/internal/stackexchange"
	tuitheme "github.com/glabrego/stackq-cli/internal/tui/theme"
)

// DetailMargin is the left padding of the detail view. The layout engine
// wraps at markup.DetailWrapWidth, which leaves the same room on the right.
const DetailMargin = 2

type DetailParams struct {
	Question stackexchange.Question
	Answers  []stackexchange.Answer
	Width    int
	Now      int64
	Options  markup.Options
}

// DetailLines lays out a question followed by its answers. The slice is
// fully built so it can be scrolled by index.
func DetailLines(p DetailParams, th tuitheme.Theme) []string {
	width := markup.DetailWrapWidth(p.Width)
	q := p.Question
	lines := make([]string, 0, 64)

	for _, line := range markup.Wrap(q.Title, width) {
		lines = append(lines, th.Header.Render(line))
	}
	if link := strings.TrimSpace(markup.StripControl(q.Link)); link != "" {
		for _, line := range strings.Split(ansi.Hardwrap(link, width, true), "\n") {
			lines = append(lines, th.Link.Render(line))
		}
	}
	lines = append(lines, "")
	lines = append(lines, metaLine(q.Owner.DisplayName, false, q.CreationDate, p.Now, width, th))
	lines = append(lines, th.QuestionRule.Render(markup.Rule(width)))
	lines = append(lines, markup.Lines(q.Body, width, p.Options)...)
	lines = append(lines, "")

	for _, a := range p.Answers {
		lines = append(lines, metaLine(a.Owner.DisplayName, a.IsAccepted, a.CreationDate, p.Now, width, th))
		lines = append(lines, th.AnswerRule.Render(markup.Rule(width)))
		lines = append(lines, markup.Lines(a.Body, width, p.Options)...)
		lines = append(lines, "")
	}
	return leftPadLines(lines, min(DetailMargin, max(0, p.Width-width)))
}

// metaLine is "owner · elapsed". Display names arrive HTML-escaped.
func metaLine(owner string, accepted bool, created, now int64, width int, th tuitheme.Theme) string {
	name := markup.Text(owner)
	if name == "" {
		name = "anonymous"
	}
	line := th.StyleOwner(name, accepted) + " · " + th.Meta.Render(Elapsed(now, created))
	return fitWidth(line, width)
}

// VisibleDetailLines returns exactly height lines starting at top. Rows past
// the end of the content are blank.
func VisibleDetailLines(lines []string, top, height int) []string {
	if height <= 0 {
		return nil
	}
	top = max(0, top)
	out := make([]string, height)
	for i := range out {
		if idx := top + i; idx < len(lines) {
			out[i] = lines[idx]
		}
	}
	return out
}

func leftPadLines(lines []string, padding int) []string {
	if padding <= 0 || len(lines) == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", padding)
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		out[i] = prefix + line
	}
	return out
}
