package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha. The detail body styles in render/markup use the same
// colours as the list and chrome.
var (
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Teal     = lipgloss.Color("#94e2d5")
	Blue     = lipgloss.Color("#89b4fa")
	Lavender = lipgloss.Color("#b4befe")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Subtext1 = lipgloss.Color("#bac2de")
	Overlay1 = lipgloss.Color("#7f849c")
	Surface2 = lipgloss.Color("#585b70")
)
