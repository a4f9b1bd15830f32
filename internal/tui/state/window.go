package state

// ClampSelection keeps a list index inside [0, count-1]. An empty list
// yields 0.
func ClampSelection(selected, count int) int {
	return max(0, min(selected, count-1))
}

// QuestionWindow returns the [start, end) range of questions that fit in
// lines terminal lines when each question takes rowHeight lines. At least one
// question is shown, and the selection sits as close to the middle as the
// ends of the list allow.
func QuestionWindow(count, selected, lines, rowHeight int) (int, int) {
	if count <= 0 {
		return 0, 0
	}
	rows := max(1, lines/max(1, rowHeight))
	if count <= rows {
		return 0, count
	}
	start := ClampSelection(selected, count) - rows/2
	start = max(0, min(start, count-rows))
	return start, start + rows
}
