package markup

import (
	"github.com/charmbracelet/lipgloss"

	tuitheme "github.com/glabrego/stackq-cli/internal/tui/theme"
)

var (
	detailHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(tuitheme.Lavender)
	// Heading bar colour by level, h1 first.
	detailHeadingBars = []lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Foreground(tuitheme.Blue),
		lipgloss.NewStyle().Bold(true).Foreground(tuitheme.Mauve),
		lipgloss.NewStyle().Bold(true).Foreground(tuitheme.Teal),
		lipgloss.NewStyle().Bold(true).Foreground(tuitheme.Green),
		lipgloss.NewStyle().Bold(true).Foreground(tuitheme.Yellow),
		lipgloss.NewStyle().Bold(true).Foreground(tuitheme.Peach),
	}

	detailLinkURL     = lipgloss.NewStyle().Foreground(tuitheme.Blue).Faint(true)
	detailQuoteBar    = lipgloss.NewStyle().Foreground(tuitheme.Overlay1)
	detailQuoteText   = lipgloss.NewStyle().Italic(true).Foreground(tuitheme.Subtext0)
	detailCodeStyle   = lipgloss.NewStyle().Foreground(tuitheme.Peach)
	detailTableBorder = lipgloss.NewStyle().Foreground(tuitheme.Surface2)
	detailTableHeader = lipgloss.NewStyle().Bold(true).Foreground(tuitheme.Yellow)
	detailImageLabel  = lipgloss.NewStyle().Foreground(tuitheme.Mauve).Faint(true).Italic(true)
	detailImageText   = lipgloss.NewStyle().Foreground(tuitheme.Subtext1).Italic(true)
)
