package state

import "testing"

func TestClampSelection(t *testing.T) {
	cases := []struct{ selected, count, want int }{
		{-1, 3, 0},
		{3, 3, 2},
		{1, 3, 1},
		{4, 0, 0},
		{0, 1, 0},
	}
	for _, tc := range cases {
		if got := ClampSelection(tc.selected, tc.count); got != tc.want {
			t.Fatalf("ClampSelection(%d, %d) = %d, want %d", tc.selected, tc.count, got, tc.want)
		}
	}
}

func TestQuestionWindow(t *testing.T) {
	cases := []struct {
		count, selected, lines, rowHeight int
		start, end                        int
	}{
		{count: 5, selected: 3, lines: 20, rowHeight: 2, start: 0, end: 5},
		{count: 5, selected: 3, lines: 6, rowHeight: 2, start: 2, end: 5},
		{count: 20, selected: 0, lines: 8, rowHeight: 2, start: 0, end: 4},
		{count: 20, selected: 10, lines: 8, rowHeight: 2, start: 8, end: 12},
		{count: 20, selected: 19, lines: 9, rowHeight: 2, start: 16, end: 20},
		{count: 20, selected: 7, lines: 1, rowHeight: 2, start: 7, end: 8},
		{count: 20, selected: 7, lines: 0, rowHeight: 2, start: 7, end: 8},
		{count: 0, selected: 0, lines: 8, rowHeight: 2, start: 0, end: 0},
	}
	for _, tc := range cases {
		start, end := QuestionWindow(tc.count, tc.selected, tc.lines, tc.rowHeight)
		if start != tc.start || end != tc.end {
			t.Fatalf("QuestionWindow(%d, %d, %d, %d) = [%d, %d), want [%d, %d)",
				tc.count, tc.selected, tc.lines, tc.rowHeight, start, end, tc.start, tc.end)
		}
	}
}
