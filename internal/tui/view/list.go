package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/glabrego/stackq-cli/internal/render/markup"
	"github.com/glabrego/stackq-cli/internal/stackexchange"
	tuistate "github.com/glabrego/stackq-cli/internal/tui/state"
	tuitheme "github.com/glabrego/stackq-cli/internal/tui/theme"
)

// RowHeight is the number of lines one question takes in the list.
const RowHeight = 2

const cursorMarker = "> "

type ListRowParams struct {
	Question stackexchange.Question
	Index    int
	Active   bool
	Width    int
	Now      int64
}

// RenderListRow returns the title line and the info line for one question.
// Both fit in Width columns.
func RenderListRow(p ListRowParams, th tuitheme.Theme) []string {
	marker := strings.Repeat(" ", len(cursorMarker))
	if p.Active {
		marker = cursorMarker
	}
	avail := max(1, p.Width-len(marker))
	prefix := fmt.Sprintf("%d. ", p.Index+1)
	title := markup.TruncateTitle(p.Question.Title, markup.RowTitleWidth(avail, p.Index))

	titleLine := marker + th.ListNumber.Render(prefix) + th.StyleTitle(p.Active, title)
	infoLine := strings.Repeat(" ", len(marker)+markup.ListPrefixWidth(p.Index)) +
		th.Meta.Render(QuestionInfo(p.Question, p.Now))

	return []string{
		fitWidth(titleLine, p.Width),
		fitWidth(infoLine, p.Width),
	}
}

// QuestionInfo is the second row of a list entry, e.g. "2 hours ago · 3 answers".
func QuestionInfo(q stackexchange.Question, now int64) string {
	answers := fmt.Sprintf("%d answers", q.AnswerCount)
	if q.AnswerCount == 1 {
		answers = "1 answer"
	}
	return Elapsed(now, q.CreationDate) + " · " + answers
}

func ListHeader(query string, width int, th tuitheme.Theme) string {
	return fitWidth(th.Header.Render("Results for: "+markup.StripControl(query)), width)
}

// ListWindow returns the range of questions that fit in height lines while
// keeping the selection in view.
func ListWindow(total, selected, height int) (int, int) {
	return tuistate.QuestionWindow(total, selected, height, RowHeight)
}

func RenderListBody(questions []stackexchange.Question, start, end, selected, width int, now int64, th tuitheme.Theme) []string {
	if start < 0 || start >= end || len(questions) == 0 {
		return nil
	}
	end = min(end, len(questions))
	lines := make([]string, 0, (end-start)*RowHeight)
	for i := start; i < end; i++ {
		lines = append(lines, RenderListRow(ListRowParams{
			Question: questions[i],
			Index:    i,
			Active:   i == selected,
			Width:    width,
			Now:      now,
		}, th)...)
	}
	return lines
}

// fitWidth cuts a styled line to width columns.
func fitWidth(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "")
}
