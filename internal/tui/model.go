package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/focus"
	"github.com/asytuyf/genesis-vault/internal/github"
	"github.com/asytuyf/genesis-vault/internal/ledger"
	"github.com/asytuyf/genesis-vault/internal/models"
	"github.com/asytuyf/genesis-vault/internal/outbox"
	"github.com/asytuyf/genesis-vault/internal/storage"
	"github.com/asytuyf/genesis-vault/internal/tui/components/focustimer"
	"github.com/asytuyf/genesis-vault/internal/tui/components/goals"
	"github.com/asytuyf/genesis-vault/internal/tui/components/library"
	"github.com/asytuyf/genesis-vault/internal/tui/components/repos"
	"github.com/asytuyf/genesis-vault/internal/tui/components/streaks"
	"github.com/asytuyf/genesis-vault/internal/utils"
)

// Deps are the application services the dashboard needs.
type Deps struct {
	Store  storage.Provider
	Ledger *ledger.Ledger
	Syncer *ledger.Syncer
	Outbox *outbox.Outbox
	GitHub *github.Client
}

type HabitFormModel struct {
	Name  string
	Color string
}

type SnippetFormModel struct {
	Title    string
	Category string
	Content  string
}

type GoalFormModel struct {
	Task     string
	Project  string
	Priority string
}

type Model struct {
	deps          Deps
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	streaksModel streaks.Model
	libraryModel library.Model
	goalsModel   goals.Model
	focusModel   focustimer.Model
	reposModel   repos.Model

	form        *huh.Form
	habitForm   *HabitFormModel
	snippetForm *SnippetFormModel
	goalForm    *GoalFormModel

	viewingSnippet    models.Snippet
	habitToDeleteID   string
	snippetToDeleteID string

	formError string
	quitting  bool
	width     int
	height    int
}

// Run starts the dashboard and blocks until it exits.
func Run(deps Deps) error {
	program := tea.NewProgram(NewModel(deps), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func NewModel(deps Deps) Model {
	settings, _ := deps.Store.GetSettings()
	focusLog, _ := deps.Store.GetFocusLog()
	snippets, _ := deps.Store.GetSnippets()
	goalList, _ := deps.Store.GetGoals()

	timer := focus.NewTimer(settings.Focus, focusLog)
	timer.SetClock(utils.ClockIn(settings.Timezone))

	m := Model{
		deps:         deps,
		state:        constants.StateStreaks,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		streaksModel: streaks.New(nil, 0, 0),
		libraryModel: library.New(snippets, 0, 0),
		goalsModel:   goals.New(goalList, 0, 0),
		focusModel:   focustimer.New(timer),
		reposModel:   repos.New(0, 0),
	}
	m.refreshStreaks()
	return m
}

// refreshStreaks rebuilds the habit rows and heatmap from the ledger and
// the cached event feed.
func (m *Model) refreshStreaks() {
	habits := m.deps.Ledger.Habits()
	today := m.deps.Ledger.Today()

	items := make([]streaks.Item, len(habits))
	for i, h := range habits {
		items[i] = streaks.Item{
			Habit:   h,
			Done:    h.Completed(today),
			Current: m.deps.Ledger.CurrentStreak(h),
			Longest: ledger.LongestStreak(h),
		}
	}
	m.streaksModel.SetItems(items)

	settings, _ := m.deps.Store.GetSettings()
	days := settings.HeatmapDays
	if days <= 0 {
		days = constants.DefaultHeatmapDays
	}
	cache := m.deps.Syncer.Cached()
	m.streaksModel.SetHeatmap(renderHeatmap(m.deps.Ledger.BuildHeatmap(cache.ByDay, days)))
	if !cache.SyncedAt.IsZero() {
		m.streaksModel.SetFooter("feed synced " + cache.SyncedAt.Format("2006-01-02 15:04"))
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab},
		{m.keys.Back, m.keys.Quit, m.keys.Help},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.syncFeedCmd(), m.loadReposCmd())
}
