package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	tuitheme "github.com/glabrego/stackq-cli/internal/tui/theme"
)

func TestStatusLine(t *testing.T) {
	th := tuitheme.Default()

	idle := ansi.Strip(StatusLine(StatusParams{Summary: "12 questions", Width: 80}, th))
	if !strings.Contains(idle, "12 questions") {
		t.Fatalf("unexpected idle status %q", idle)
	}

	loading := ansi.Strip(StatusLine(StatusParams{Loading: true, Spinner: "*", Status: "ignored", Width: 80}, th))
	if !strings.HasPrefix(loading, "* Fetching answers...") {
		t.Fatalf("unexpected loading status %q", loading)
	}

	warn := ansi.Strip(StatusLine(StatusParams{Warning: true, Status: "could not copy link", Width: 80}, th))
	if !strings.Contains(warn, "could not copy link") {
		t.Fatalf("unexpected warning status %q", warn)
	}

	if w := ansi.StringWidth(StatusLine(StatusParams{Summary: "question 3 of 12", Width: 6}, th)); w > 6 {
		t.Fatalf("expected status clipped to 6 columns, got %d", w)
	}
}
