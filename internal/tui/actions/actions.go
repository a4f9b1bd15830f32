package actions

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/stackq-cli/internal/stackexchange"
)

// DefaultFetchTimeout bounds a single answer fetch.
const DefaultFetchTimeout = 10 * time.Second

type Service interface {
	Answers(ctx context.Context, questionID int64) ([]stackexchange.Answer, error)
}

// AnswersLoadedMsg completes the fetch started for Question. Err is set when
// the fetch failed; Answers is then empty.
type AnswersLoadedMsg struct {
	Question stackexchange.Question
	Answers  []stackexchange.Answer
	Err      error
	Duration time.Duration
}

type URLActionSuccessMsg struct {
	Status string
	Opened bool
}

type URLActionErrorMsg struct {
	Err error
}

type ClearStatusMsg struct {
	ID int
}

func FetchAnswersCmd(service Service, question stackexchange.Question, timeout time.Duration) tea.Cmd {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()

		answers, err := service.Answers(ctx, question.ID)
		if err != nil {
			return AnswersLoadedMsg{Question: question, Err: err, Duration: time.Since(start)}
		}
		return AnswersLoadedMsg{Question: question, Answers: answers, Duration: time.Since(start)}
	}
}

// OpenURLCmd tries the browser first and falls back to the clipboard.
func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return URLActionSuccessMsg{Status: "Opened link in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return URLActionSuccessMsg{Status: "Could not open browser, link copied to clipboard"}
			}
		}
		return URLActionErrorMsg{Err: errors.New("could not open link or copy it to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return URLActionSuccessMsg{Status: "Link copied to clipboard"}
			}
		}
		return URLActionErrorMsg{Err: errors.New("could not copy link to clipboard")}
	}
}

// ClearStatusCmd fires after d so the model can drop the status line it set
// with the same id.
func ClearStatusCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
