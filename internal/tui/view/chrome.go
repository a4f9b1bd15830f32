package view

import (
	tuitheme "github.com/glabrego/stackq-cli/internal/tui/theme"
)

type StatusParams struct {
	Loading bool
	Spinner string
	Status  string
	Warning bool
	Summary string
	Width   int
}

// StatusLine renders the single line above the key help.
func StatusLine(p StatusParams, th tuitheme.Theme) string {
	state := th.StateIdle.Render("●")
	main := p.Summary
	switch {
	case p.Loading:
		state = th.StateLoad.Render(p.Spinner)
		main = "Fetching answers..."
	case p.Warning:
		state = th.StateWarn.Render("●")
	}
	if p.Status != "" && !p.Loading {
		main = p.Status
	}
	return fitWidth(state+" "+th.Meta.Render(main), p.Width)
}
