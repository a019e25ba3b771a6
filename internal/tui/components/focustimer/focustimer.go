// Package focustimer renders the pomodoro page and drives the countdown
// with one-second ticks.
package focustimer

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/focus"
)

// TickMsg advances the countdown.
type TickMsg time.Time

// PhaseDoneMsg is emitted when a work or break phase completes, so the
// parent can persist the updated session log.
type PhaseDoneMsg struct{}

var (
	clockStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	modeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type Model struct {
	Timer *focus.Timer
}

func New(timer *focus.Timer) Model {
	return Model{Timer: timer}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		completed := m.Timer.Tick()
		var cmds []tea.Cmd
		if m.Timer.Running() {
			cmds = append(cmds, tick())
		}
		if completed {
			cmds = append(cmds, func() tea.Msg { return PhaseDoneMsg{} })
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			if m.Timer.Running() {
				m.Timer.Pause()
				return m, nil
			}
			m.Timer.Start()
			return m, tick()
		case "r":
			m.Timer.Reset()
			return m, nil
		case "n":
			m.Timer.Skip()
			return m, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	mode := "Work"
	if m.Timer.Mode() == constants.FocusBreak {
		mode = "Break"
	}
	status := "paused"
	if m.Timer.Running() {
		status = "running"
	}

	sessions := ""
	for i := 0; i < m.Timer.SessionsToday(); i++ {
		sessions += "●"
	}
	if sessions == "" {
		sessions = "none yet"
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		modeStyle.Render(fmt.Sprintf("%s session (%s)", mode, status)),
		"",
		clockStyle.Render(m.Timer.Display()),
		"",
		doneStyle.Render("today: "+sessions),
		"",
		modeStyle.Render("[space] start/pause  [r] reset  [n] skip phase"),
	)
}
