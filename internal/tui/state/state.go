package state

import (
	"github.com/glabrego/stackq-cli/internal/stackexchange"
)

// PageStep is the number of rows or lines a page key moves.
const PageStep = 5

const (
	fallbackOwner = "Error"
	fallbackBody  = "Failed to fetch answers."
)

// Mode is either ListMode or DetailMode.
type Mode interface {
	isMode()
}

type ListMode struct {
	Selected int
}

// DetailMode is a snapshot taken when the question was entered. ReturnTo is
// the list selection to restore on Back.
type DetailMode struct {
	Question stackexchange.Question
	Answers  []stackexchange.Answer
	Scroll   int
	ReturnTo int
}

func (ListMode) isMode()   {}
func (DetailMode) isMode() {}

// Navigator owns the view state for one session. It is not safe for
// concurrent use; the bubbletea model is its only caller.
type Navigator struct {
	questions []stackexchange.Question
	mode      Mode
	pending   bool
	enteredAt int
}

func NewNavigator(questions []stackexchange.Question) *Navigator {
	return &Navigator{
		questions: questions,
		mode:      ListMode{Selected: 0},
	}
}

func (n *Navigator) Mode() Mode {
	return n.mode
}

func (n *Navigator) Questions() []stackexchange.Question {
	return n.questions
}

// Pending reports whether an answer fetch started by Enter has not been
// completed with ShowAnswers yet.
func (n *Navigator) Pending() bool {
	return n.pending
}

func (n *Navigator) MovePrevious() {
	if n.pending {
		return
	}
	switch m := n.mode.(type) {
	case ListMode:
		if len(n.questions) == 0 {
			return
		}
		if m.Selected == 0 {
			m.Selected = len(n.questions) - 1
		} else {
			m.Selected--
		}
		n.mode = m
	case DetailMode:
		m.Scroll = max(0, m.Scroll-1)
		n.mode = m
	}
}

func (n *Navigator) MoveNext() {
	if n.pending {
		return
	}
	switch m := n.mode.(type) {
	case ListMode:
		if len(n.questions) == 0 {
			return
		}
		if m.Selected == len(n.questions)-1 {
			m.Selected = 0
		} else {
			m.Selected++
		}
		n.mode = m
	case DetailMode:
		m.Scroll++
		n.mode = m
	}
}

func (n *Navigator) PagePrevious() {
	if n.pending {
		return
	}
	switch m := n.mode.(type) {
	case ListMode:
		if len(n.questions) == 0 {
			return
		}
		if m.Selected <= PageStep {
			m.Selected = 0
		} else {
			m.Selected -= PageStep
		}
		n.mode = m
	case DetailMode:
		m.Scroll = max(0, m.Scroll-PageStep)
		n.mode = m
	}
}

func (n *Navigator) PageNext() {
	if n.pending {
		return
	}
	switch m := n.mode.(type) {
	case ListMode:
		if len(n.questions) == 0 {
			return
		}
		if m.Selected+PageStep >= len(n.questions) {
			m.Selected = len(n.questions) - 1
		} else {
			m.Selected += PageStep
		}
		n.mode = m
	case DetailMode:
		m.Scroll += PageStep
		n.mode = m
	}
}

// Enter snapshots the selected question and marks its answer fetch as
// pending. ok is false in detail mode, with an empty list, or while another
// fetch is outstanding; the caller must not fetch in that case.
func (n *Navigator) Enter() (q stackexchange.Question, ok bool) {
	if n.pending || len(n.questions) == 0 {
		return stackexchange.Question{}, false
	}
	m, isList := n.mode.(ListMode)
	if !isList {
		return stackexchange.Question{}, false
	}
	n.pending = true
	n.enteredAt = m.Selected
	return n.questions[m.Selected], true
}

// ShowAnswers completes the transition started by Enter. A fetch error
// replaces the answers with a single synthetic entry. It returns false when
// no fetch was pending.
func (n *Navigator) ShowAnswers(q stackexchange.Question, answers []stackexchange.Answer, err error) bool {
	if !n.pending {
		return false
	}
	n.pending = false
	if err != nil {
		answers = FallbackAnswers()
	}
	n.mode = DetailMode{
		Question: q,
		Answers:  answers,
		Scroll:   0,
		ReturnTo: n.enteredAt,
	}
	return true
}

func (n *Navigator) Back() {
	if n.pending {
		return
	}
	if m, ok := n.mode.(DetailMode); ok {
		n.mode = ListMode{Selected: ClampSelection(m.ReturnTo, len(n.questions))}
	}
}

// Selected returns the list selection, or the selection Back will restore
// when in detail mode.
func (n *Navigator) Selected() int {
	switch m := n.mode.(type) {
	case ListMode:
		return m.Selected
	case DetailMode:
		return m.ReturnTo
	}
	return 0
}

// FallbackAnswers stands in for the answers of a question whose fetch failed.
func FallbackAnswers() []stackexchange.Answer {
	return []stackexchange.Answer{{
		Owner:        stackexchange.Owner{DisplayName: fallbackOwner},
		Body:         fallbackBody,
		CreationDate: 0,
	}}
}
