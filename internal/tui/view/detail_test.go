package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/glabrego/stackq-cli/internal/render/markup"
	"github.com/glabrego/stackq-cli/internal/stackexchange"
	tuistate "github.com/glabrego/stackq-cli/internal/tui/state"
	tuitheme "github.com/glabrego/stackq-cli/internal/tui/theme"
)

func sampleDetail(width int) DetailParams {
	return DetailParams{
		Question: stackexchange.Question{
			Title:        "Why does my goroutine leak?",
			Body:         "<p>I start a goroutine and it never exits.</p>",
			Link:         "https://stackoverflow.com/questions/123/why-does-my-goroutine-leak",
			Owner:        stackexchange.Owner{DisplayName: "J&#252;rgen"},
			CreationDate: testNow - 3 * 86400,
		},
		Answers: []stackexchange.Answer{
			{Body: "<p>Close the channel.</p>", Owner: stackexchange.Owner{DisplayName: "alice"}, CreationDate: testNow - 60, IsAccepted: true},
			{Body: "<p>Use a context.</p>", Owner: stackexchange.Owner{DisplayName: "bob"}, CreationDate: testNow - 7200},
		},
		Width:   width,
		Now:     testNow,
		Options: markup.PlainOptions,
	}
}

func TestDetailLines_Layout(t *testing.T) {
	lines := DetailLines(sampleDetail(80), tuitheme.Default())
	plain := make([]string, len(lines))
	for i, line := range lines {
		plain[i] = ansi.Strip(line)
	}
	rule := strings.Repeat("─", 76)
	want := []string{
		"  Why does my goroutine leak?",
		"  https://stackoverflow.com/questions/123/why-does-my-goroutine-leak",
		"",
		"  Jürgen · 3 days ago",
		"  " + rule,
		"  I start a goroutine and it never exits.",
		"",
		"  alice ✓ · 1 minute ago",
		"  " + rule,
		"  Close the channel.",
		"",
		"  bob · 2 hours ago",
		"  " + rule,
		"  Use a context.",
		"",
	}
	if strings.Join(plain, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected layout:\n%s\nwant:\n%s", strings.Join(plain, "\n"), strings.Join(want, "\n"))
	}
}

func TestDetailLines_FitWidth(t *testing.T) {
	for _, width := range []int{1, 3, 5, 10, 33} {
		for _, line := range DetailLines(sampleDetail(width), tuitheme.Default()) {
			if w := ansi.StringWidth(line); w > max(width, 1) {
				t.Fatalf("width %d: line %q is %d columns", width, ansi.Strip(line), w)
			}
		}
	}
}

func TestDetailLines_FallbackAnswer(t *testing.T) {
	p := sampleDetail(60)
	p.Answers = tuistate.FallbackAnswers()
	joined := ansi.Strip(strings.Join(DetailLines(p, tuitheme.Default()), "\n"))
	if !strings.Contains(joined, "Error · ") || !strings.Contains(joined, "Failed to fetch answers.") {
		t.Fatalf("expected synthetic error answer in detail view, got %q", joined)
	}
}

func TestVisibleDetailLines(t *testing.T) {
	lines := []string{"a", "b", "c"}

	got := VisibleDetailLines(lines, 1, 4)
	if strings.Join(got, "|") != "b|c||" {
		t.Fatalf("unexpected window %q", got)
	}

	got = VisibleDetailLines(lines, 50, 2)
	if len(got) != 2 || got[0] != "" || got[1] != "" {
		t.Fatalf("expected blank rows past the end, got %q", got)
	}

	if got := VisibleDetailLines(lines, 0, 0); got != nil {
		t.Fatalf("expected nothing for zero height, got %q", got)
	}
}

func TestDetailLines_DropsControlCharacters(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	p := sampleDetail(80)
	p.Question.Title = "title &#27;]0;owned&#7;"
	p.Question.Link = "https://stackoverflow.com/q/1\x1b[2J"
	p.Question.Owner.DisplayName = "eve&#27;[31m"
	p.Answers[0].Body = "<p>&#27;[2Jgone</p>"

	for _, line := range DetailLines(p, tuitheme.Default()) {
		for _, r := range line {
			if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
				t.Fatalf("control character %U left in %q", r, line)
			}
		}
	}
	if got := ListHeader("go\x1b]0;x\a", 80, tuitheme.Default()); got != "Results for: go]0;x" {
		t.Fatalf("unexpected header %q", got)
	}
}
