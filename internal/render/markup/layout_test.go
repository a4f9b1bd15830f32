package markup

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateTitle(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		width int
		want  string
	}{
		{name: "fits", raw: "Hello world", width: 20, want: "Hello world"},
		{name: "exact fit", raw: "Hello world", width: 11, want: "Hello world"},
		{name: "truncated", raw: "Hello world", width: 8, want: "Hello..."},
		{name: "entities", raw: "Q &amp; A &gt; all", width: 40, want: "Q & A > all"},
		{name: "tags", raw: "Why is <code>x</code> nil?", width: 40, want: "Why is x nil?"},
		{name: "width of ellipsis", raw: "Hello", width: 3, want: "..."},
		{name: "narrower than ellipsis", raw: "Hello", width: 2, want: ".."},
		{name: "one column", raw: "Hello", width: 1, want: "."},
		{name: "zero width", raw: "Hello", width: 0, want: ""},
		{name: "wide glyph padding", raw: "日本語テキスト", width: 8, want: "日本 ..."},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateTitle(tc.raw, tc.width)
			if got != tc.want {
				t.Fatalf("TruncateTitle(%q, %d) = %q, want %q", tc.raw, tc.width, got, tc.want)
			}
		})
	}
}

func TestTruncateTitle_ShortenedIsExactlyWidth(t *testing.T) {
	title := "How to correctly cancel a goroutine blocked on a channel send in Go?"
	for width := 1; width < runewidth.StringWidth(title); width++ {
		got := TruncateTitle(title, width)
		if w := runewidth.StringWidth(got); w != width {
			t.Fatalf("width %d: got %q with %d columns", width, got, w)
		}
		if !strings.HasSuffix(got, strings.Repeat(".", min(width, 3))) {
			t.Fatalf("width %d: expected trailing dots, got %q", width, got)
		}
	}
}

func TestListPrefixWidth(t *testing.T) {
	cases := map[int]int{0: 3, 8: 3, 9: 4, 98: 4, 99: 5}
	for index, want := range cases {
		if got := ListPrefixWidth(index); got != want {
			t.Fatalf("ListPrefixWidth(%d) = %d, want %d", index, got, want)
		}
	}
}

func TestRowTitleWidth(t *testing.T) {
	if got := RowTitleWidth(80, 9); got != 76 {
		t.Fatalf("expected 76, got %d", got)
	}
	if got := RowTitleWidth(2, 0); got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
}

func TestDetailWrapWidth(t *testing.T) {
	for termWidth, want := range map[int]int{80: 76, 5: 1, 4: 1, 0: 1, -3: 1} {
		if got := DetailWrapWidth(termWidth); got != want {
			t.Fatalf("DetailWrapWidth(%d) = %d, want %d", termWidth, got, want)
		}
	}
}

func TestRule(t *testing.T) {
	if got := Rule(3); got != "───" {
		t.Fatalf("unexpected rule %q", got)
	}
	if got := Rule(0); got != "─" {
		t.Fatalf("expected a single glyph for non-positive width, got %q", got)
	}
}
