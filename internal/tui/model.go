package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/stackq-cli/internal/debug"
	"github.com/glabrego/stackq-cli/internal/render/markup"
	"github.com/glabrego/stackq-cli/internal/stackexchange"
	tuiactions "github.com/glabrego/stackq-cli/internal/tui/actions"
	tuiplatform "github.com/glabrego/stackq-cli/internal/tui/platform"
	"github.com/glabrego/stackq-cli/internal/tui/schedule"
	tuistate "github.com/glabrego/stackq-cli/internal/tui/state"
	tuitheme "github.com/glabrego/stackq-cli/internal/tui/theme"
	tuiview "github.com/glabrego/stackq-cli/internal/tui/view"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	listHeaderLen = 2
	statusTTL     = 4 * time.Second
)

type Service interface {
	tuiactions.Service
}

type tickMsg time.Time

type Options struct {
	Query        string
	FetchTimeout time.Duration
}

type detailCacheKey struct {
	generation int
	width      int
	minute     int64
}

type detailCache struct {
	key   detailCacheKey
	lines []string
}

type Model struct {
	service      Service
	nav          *tuistate.Navigator
	query        string
	fetchTimeout time.Duration

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	theme   tuitheme.Theme
	clock   *schedule.Clock
	now     time.Time

	width    int
	height   int
	status   string
	statusID int
	warning  bool
	quitting bool

	// generation changes every time a new detail snapshot is shown.
	generation int
	detail     *detailCache

	openURLFn func(string) error
	copyURLFn func(string) error
	nowFn     func() time.Time
}

func NewModel(service Service, questions []stackexchange.Question, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	th := tuitheme.Default()
	s.Style = th.StateLoad

	now := time.Now()
	return Model{
		service:      service,
		nav:          tuistate.NewNavigator(questions),
		query:        opts.Query,
		fetchTimeout: opts.FetchTimeout,
		keys:         defaultKeyMap(),
		help:         help.New(),
		spinner:      s,
		theme:        th,
		clock:        schedule.NewClock(schedule.DefaultInterval, now),
		now:          now,
		detail:       &detailCache{},
		openURLFn:    tuiplatform.OpenURLInBrowser,
		copyURLFn:    tuiplatform.CopyURLToClipboard,
		nowFn:        time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd(m.nowFn())
}

func (m Model) tickCmd(now time.Time) tea.Cmd {
	return tea.Tick(m.clock.Remaining(now), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		m.clock.Advance(now)
		m.now = now
		return m, m.tickCmd(now)
	case spinner.TickMsg:
		if !m.nav.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tuiactions.AnswersLoadedMsg:
		if !m.nav.ShowAnswers(msg.Question, msg.Answers, msg.Err) {
			debug.Logf("fetch", "dropped stale answers for question=%d", msg.Question.ID)
			return m, nil
		}
		m.generation++
		if msg.Err != nil {
			debug.Logf("fetch", "answers for question=%d failed after %s: %v", msg.Question.ID, msg.Duration, msg.Err)
			return m, nil
		}
		debug.LogKV("fetch", "answers loaded", "question", msg.Question.ID, "count", len(msg.Answers), "duration", msg.Duration)
		return m, nil
	case tuiactions.URLActionSuccessMsg:
		return m.setStatus(msg.Status, false)
	case tuiactions.URLActionErrorMsg:
		return m.setStatus(msg.Err.Error(), true)
	case tuiactions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.warning = false
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	// Nothing else is dispatched until the pending fetch lands.
	if m.nav.Pending() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.nav.MovePrevious()
	case key.Matches(msg, m.keys.Down):
		m.nav.MoveNext()
	case key.Matches(msg, m.keys.PageUp):
		m.nav.PagePrevious()
	case key.Matches(msg, m.keys.PageDown):
		m.nav.PageNext()
	case key.Matches(msg, m.keys.Enter):
		return m.enterSelected()
	case key.Matches(msg, m.keys.Back):
		m.nav.Back()
	case key.Matches(msg, m.keys.Open):
		return m.openCurrentURL()
	case key.Matches(msg, m.keys.Copy):
		return m.copyCurrentURL()
	}
	return m, nil
}

func (m Model) enterSelected() (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	q, ok := m.nav.Enter()
	if !ok {
		return m, nil
	}
	debug.LogKV("nav", "enter", "question", q.ID, "index", m.nav.Selected())
	return m, tea.Batch(
		tuiactions.FetchAnswersCmd(m.service, q, m.fetchTimeout),
		m.spinner.Tick,
	)
}

func (m Model) currentQuestion() (stackexchange.Question, bool) {
	switch mode := m.nav.Mode().(type) {
	case tuistate.DetailMode:
		return mode.Question, true
	case tuistate.ListMode:
		questions := m.nav.Questions()
		if len(questions) == 0 {
			return stackexchange.Question{}, false
		}
		return questions[tuistate.ClampSelection(mode.Selected, len(questions))], true
	}
	return stackexchange.Question{}, false
}

func (m Model) openCurrentURL() (tea.Model, tea.Cmd) {
	q, ok := m.currentQuestion()
	if !ok {
		return m, nil
	}
	validURL, err := tuiplatform.ValidatePermalink(q.Link)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	return m, tuiactions.OpenURLCmd(validURL, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	q, ok := m.currentQuestion()
	if !ok {
		return m, nil
	}
	validURL, err := tuiplatform.ValidatePermalink(q.Link)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	return m, tuiactions.CopyURLCmd(validURL, m.copyURLFn)
}

func (m Model) setStatus(status string, warning bool) (tea.Model, tea.Cmd) {
	m.status = status
	m.warning = warning
	m.statusID++
	return m, tuiactions.ClearStatusCmd(m.statusID, statusTTL)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width, height := m.size()
	footer := m.footer(width, height)
	bodyHeight := height - len(footer)

	var lines []string
	switch mode := m.nav.Mode().(type) {
	case tuistate.ListMode:
		lines = m.listLines(mode, width, bodyHeight)
	case tuistate.DetailMode:
		lines = tuiview.VisibleDetailLines(m.detailLines(mode, width), mode.Scroll, bodyHeight)
	}
	if len(lines) > bodyHeight {
		lines = lines[:bodyHeight]
	}
	for len(lines) < bodyHeight {
		lines = append(lines, "")
	}
	return strings.Join(append(lines, footer...), "\n")
}

func (m Model) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (m Model) listLines(mode tuistate.ListMode, width, height int) []string {
	questions := m.nav.Questions()
	lines := make([]string, 0, max(0, height))
	// The header is dropped when there is no room for it and one row.
	if height >= listHeaderLen+tuiview.RowHeight {
		lines = append(lines, tuiview.ListHeader(m.query, width, m.theme), "")
		height -= listHeaderLen
	}

	start, end := tuiview.ListWindow(len(questions), mode.Selected, height)
	lines = append(lines, tuiview.RenderListBody(questions, start, end, mode.Selected, width, m.now.Unix(), m.theme)...)
	return lines
}

// detailLines lays the snapshot out again only when the width, the snapshot
// or the minute shown by relative times changes.
func (m Model) detailLines(mode tuistate.DetailMode, width int) []string {
	k := detailCacheKey{generation: m.generation, width: width, minute: m.now.Unix() / 60}
	if m.detail != nil && m.detail.lines != nil && m.detail.key == k {
		return m.detail.lines
	}
	lines := tuiview.DetailLines(tuiview.DetailParams{
		Question: mode.Question,
		Answers:  mode.Answers,
		Width:    width,
		Now:      m.now.Unix(),
		Options:  markup.DefaultOptions,
	}, m.theme)
	if m.detail != nil {
		m.detail.key = k
		m.detail.lines = lines
	}
	return lines
}

// footer returns the status line and key help, keeping at least one body
// line. Full help falls back to short help, then to the status line alone.
func (m Model) footer(width, height int) []string {
	_, detail := m.nav.Mode().(tuistate.DetailMode)
	status := tuiview.StatusLine(tuiview.StatusParams{
		Loading: m.nav.Pending(),
		Spinner: m.spinner.View(),
		Status:  m.status,
		Warning: m.warning,
		Summary: m.summary(),
		Width:   width,
	}, m.theme)

	h := m.help
	h.Width = width
	keys := m.keys.forMode(detail)
	candidates := [][]string{
		append([]string{status}, strings.Split(h.View(keys), "\n")...),
		{status, h.ShortHelpView(keys.ShortHelp())},
		{status},
	}
	for _, footer := range candidates {
		if len(footer) < height {
			return footer
		}
	}
	return nil
}

func (m Model) summary() string {
	total := len(m.nav.Questions())
	switch mode := m.nav.Mode().(type) {
	case tuistate.DetailMode:
		n := len(mode.Answers)
		if n == 1 {
			return fmt.Sprintf("question %d of %d · 1 answer", mode.ReturnTo+1, total)
		}
		return fmt.Sprintf("question %d of %d · %d answers", mode.ReturnTo+1, total, n)
	case tuistate.ListMode:
		if total == 0 {
			return "no questions"
		}
		return fmt.Sprintf("%d of %d questions", mode.Selected+1, total)
	}
	return ""
}
