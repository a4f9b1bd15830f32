package markup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

const sampleAnswer = `<p>Use a <code>context.Context</code> and cancel it:</p>
<pre><code>ctx, cancel := context.WithCancel(parent)
defer cancel()
</code></pre>
<h2>Why</h2>
<p>Intro with a <a href="https://example.com/link">reference</a>.</p>
<ul><li>First point</li><li>Second point</li></ul>
<ol><li>Step one</li><li>Step two</li></ol>
<blockquote><p>Quoted claim</p><cite>Jane Doe</cite></blockquote>
<table>
	<tr><th>Metric</th><th>Value</th></tr>
	<tr><td>Speed</td><td>Fast</td></tr>
</table>
<p><img src="https://i.sstatic.net/x.png" alt="diagram"></p>
<hr>
<p>Supercalifragilisticexpialidocious&nbsp;words and 日本語のテキスト too.</p>`

func plain(lines []string) string {
	return ansi.Strip(strings.Join(lines, "\n"))
}

func TestWrap_StripsTagsAndDecodesEntities(t *testing.T) {
	got := Wrap("<p>Tom &amp; Jerry <b>both</b> &lt;3 &quot;cheese&quot;</p>", 80)
	if len(got) != 1 || got[0] != `Tom & Jerry both <3 "cheese"` {
		t.Fatalf("unexpected lines: %q", got)
	}
}

func TestWrap_BreaksAtWhitespace(t *testing.T) {
	got := Wrap("<p>the quick brown fox jumps</p>", 10)
	want := []string{"the quick", "brown fox", "jumps"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrap_SplitsWordsLongerThanWidth(t *testing.T) {
	got := Wrap("<p>go abcdefghij</p>", 4)
	want := []string{"go", "abcd", "efgh", "ij"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrap_SeparatesParagraphs(t *testing.T) {
	got := Wrap("<p>one</p><p>two</p>", 20)
	want := []string{"one", "", "two"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrap_PreservesPreformattedLines(t *testing.T) {
	got := Wrap("<pre><code>if x {\n\treturn\n}</code></pre>", 40)
	want := []string{"    if x {", "        return", "    }"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrap_EmptyInput(t *testing.T) {
	if got := Wrap("   ", 20); len(got) != 0 {
		t.Fatalf("expected no lines, got %q", got)
	}
	if got := Wrap("<p></p>", 20); len(got) != 0 {
		t.Fatalf("expected no lines for empty paragraph, got %q", got)
	}
}

func TestWrap_PlainHasNoEscapeSequences(t *testing.T) {
	for _, line := range Wrap(sampleAnswer, 30) {
		if strings.Contains(line, "\x1b") {
			t.Fatalf("expected plain output, got %q", line)
		}
	}
}

func TestLines_NeverExceedWidth(t *testing.T) {
	for _, opts := range []Options{PlainOptions, DefaultOptions} {
		for width := 1; width <= 60; width++ {
			for _, line := range Lines(sampleAnswer, width, opts) {
				if w := runewidth.StringWidth(ansi.Strip(line)); w > width {
					t.Fatalf("width %d (styled=%v): line %q is %d columns", width, opts.StyleBlocks, ansi.Strip(line), w)
				}
			}
		}
	}
}

func TestLines_RendersCommonElements(t *testing.T) {
	got := plain(Lines(sampleAnswer, 80, DefaultOptions))

	for _, want := range []string{
		"Use a context.Context and cancel it:",
		"    ctx, cancel := context.WithCancel(parent)",
		"▌ Why",
		"reference (https://example.com/link).",
		"• First point",
		"1. Step one",
		"│ Quoted claim",
		"│ Jane Doe",
		"| Metric | Value |",
		"| --- | --- |",
		"| Speed | Fast |",
		"◌◌◌ Image diagram",
		"------------------------",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in rendered output, got %q", want, got)
		}
	}
}

func TestWrap_PlainMarkers(t *testing.T) {
	got := plain(Wrap(sampleAnswer, 80))
	for _, want := range []string{"- First point", "Quoted claim", "[image: diagram]", "Why"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in plain output, got %q", want, got)
		}
	}
	if strings.Contains(got, "│") || strings.Contains(got, "▌") {
		t.Fatalf("expected no decorations in plain output, got %q", got)
	}
}

func TestLines_ImageModeNone(t *testing.T) {
	got := plain(Lines(`<p>a</p><img alt="pic"><p>b</p>`, 40, Options{ImageMode: ImageModeNone}))
	if strings.Contains(got, "pic") {
		t.Fatalf("expected images omitted, got %q", got)
	}
}

func TestText_CollapsesToSingleLine(t *testing.T) {
	got := Text("<p>How do I\n  <b>exit</b> vim?</p><p>Second &amp; last</p>")
	if got != "How do I exit vim? Second & last" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return true
		}
	}
	return false
}

func TestLines_DropsEncodedControlCharacters(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	got := Wrap("<p>&#27;[2J&#27;]0;pwned&#7; hello</p>", 80)
	if len(got) != 1 || got[0] != "[2J]0;pwned hello" {
		t.Fatalf("unexpected lines: %q", got)
	}

	if got := Text("title &#27;[31mred&#x1b;[0m"); got != "title [31mred[0m" {
		t.Fatalf("unexpected text: %q", got)
	}

	inputs := []string{
		"<p>raw \u009b31m c1</p>",
		`<p><a href="https://x.io/&#27;[2J">link</a></p>`,
		`<p><img src="x.png" alt="alt&#27;]0;t&#7;"></p>`,
		"<pre><code>a\t&#27;[1Ab&#127;</code></pre>",
		"<table><tr><th>h&#27;[5m</th></tr><tr><td>&#8;x</td></tr></table>",
	}
	for _, in := range inputs {
		for _, opts := range []Options{PlainOptions, DefaultOptions} {
			for _, line := range Lines(in, 40, opts) {
				if hasControl(line) {
					t.Fatalf("control character left in %q from %q", line, in)
				}
			}
		}
	}
}

func TestStripControl(t *testing.T) {
	if got := StripControl("a\x1bb\tc\nd\x7fe\u0085f\u009bg"); got != "ab\tc\ndefg" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestLines_LinkInCodeKeepsCodeStyle(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	got := strings.Join(Lines("<p><code>http://x.io/a</code> see http://y.io</p>", 80, DefaultOptions), "\n")
	if !strings.Contains(got, detailCodeStyle.Render("http://x.io/a")) {
		t.Fatalf("expected code span intact, got %q", got)
	}
	if strings.Contains(got, detailLinkURL.Render("http://x.io/a")) {
		t.Fatalf("expected no link style inside code, got %q", got)
	}
	if !strings.Contains(got, detailLinkURL.Render("http://y.io")) {
		t.Fatalf("expected plain URL styled as link, got %q", got)
	}
	if plain := ansi.Strip(got); plain != "http://x.io/a see http://y.io" {
		t.Fatalf("unexpected visible text %q", plain)
	}
}
