// Package ui renders a live terminal view of a download run. It observes
// the queue manager through periodic snapshots and owns no download state
// itself.
package ui

import (
	"context"
	"time"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ytbatch/internal/model"
	"ytbatch/internal/queue"
)

const pollInterval = 200 * time.Millisecond

type snapshotMsg struct {
	items  []model.QueueItem
	active bool
}

type runDoneMsg struct{}

type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	manager *queue.Manager

	items    []model.QueueItem
	active   bool
	finished bool
	aborted  bool

	width, height int
	styles        Styles
	spinner       spinner.Model
	bar           bubblesprogress.Model
}

func NewModel(ctx context.Context, manager *queue.Manager) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	sp := spinner.New()
	sp.Style = sty.Spinner

	return Model{
		ctx:     c,
		cancel:  cancel,
		manager: manager,
		items:   manager.Snapshot(),
		active:  manager.Active(),
		styles:  sty,
		spinner: sp,
		bar: bubblesprogress.New(
			bubblesprogress.WithDefaultGradient(),
			bubblesprogress.WithWidth(40),
		),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.pollCmd(), m.waitDoneCmd())
}

func (m Model) pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return snapshotMsg{items: m.manager.Snapshot(), active: m.manager.Active()}
	})
}

func (m Model) waitDoneCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.manager.Done():
			return runDoneMsg{}
		case <-m.ctx.Done():
			return runDoneMsg{}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.aborted = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case snapshotMsg:
		m.items = msg.items
		m.active = msg.active
		if m.finished {
			return m, nil
		}
		return m, m.pollCmd()

	case runDoneMsg:
		m.finished = true
		m.items = m.manager.Snapshot()
		m.active = false
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) counts() (done, failed, total int) {
	total = len(m.items)
	for _, it := range m.items {
		switch it.Status {
		case model.StatusDone:
			done++
		case model.StatusError:
			failed++
		}
	}
	return done, failed, total
}
