package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Header     lipgloss.Style
	ListNumber lipgloss.Style
	Title      lipgloss.Style
	ActiveLine lipgloss.Style
	Meta       lipgloss.Style
	Owner      lipgloss.Style
	Accepted   lipgloss.Style
	Link       lipgloss.Style

	QuestionRule lipgloss.Style
	AnswerRule   lipgloss.Style

	StateIdle lipgloss.Style
	StateWarn lipgloss.Style
	StateLoad lipgloss.Style
}

func Default() Theme {
	return Theme{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(Mauve),
		ListNumber:   lipgloss.NewStyle().Foreground(Yellow),
		Title:        lipgloss.NewStyle().Foreground(Text),
		ActiveLine:   lipgloss.NewStyle().Reverse(true),
		Meta:         lipgloss.NewStyle().Foreground(Overlay1),
		Owner:        lipgloss.NewStyle().Bold(true),
		Accepted:     lipgloss.NewStyle().Bold(true).Foreground(Green),
		Link:         lipgloss.NewStyle().Foreground(Blue),
		QuestionRule: lipgloss.NewStyle().Foreground(Yellow),
		AnswerRule:   lipgloss.NewStyle().Foreground(Green),
		StateIdle:    lipgloss.NewStyle().Foreground(Green),
		StateWarn:    lipgloss.NewStyle().Foreground(Red),
		StateLoad:    lipgloss.NewStyle().Foreground(Peach).Bold(true),
	}
}

// StyleTitle highlights the title of the selected row.
func (t Theme) StyleTitle(active bool, title string) string {
	if title == "" {
		return title
	}
	if active {
		return t.ActiveLine.Render(title)
	}
	return t.Title.Render(title)
}

// StyleOwner marks the author of an accepted answer.
func (t Theme) StyleOwner(name string, accepted bool) string {
	if accepted {
		return t.Accepted.Render(name + " ✓")
	}
	return t.Owner.Render(name)
}
