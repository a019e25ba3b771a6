package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/ledger"
	"github.com/asytuyf/genesis-vault/internal/models"
	"github.com/asytuyf/genesis-vault/internal/outbox"
	"github.com/asytuyf/genesis-vault/internal/tui/components/focustimer"
	"github.com/asytuyf/genesis-vault/internal/tui/components/goals"
	"github.com/asytuyf/genesis-vault/internal/tui/components/library"
	"github.com/asytuyf/genesis-vault/internal/tui/components/repos"
	"github.com/asytuyf/genesis-vault/internal/tui/components/streaks"
)

// feedSyncedMsg reports a finished event feed refresh.
type feedSyncedMsg struct{}

func (m Model) syncFeedCmd() tea.Cmd {
	settings, err := m.deps.Store.GetSettings()
	if err != nil || settings.GitHubUser == "" {
		return nil
	}
	user := settings.GitHubUser
	syncer := m.deps.Syncer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.GitHubHTTPTimeout)
		defer cancel()
		syncer.Sync(ctx, user)
		return feedSyncedMsg{}
	}
}

func (m Model) loadReposCmd() tea.Cmd {
	settings, err := m.deps.Store.GetSettings()
	if err != nil || settings.GitHubUser == "" {
		return nil
	}
	user := settings.GitHubUser
	client := m.deps.GitHub
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.GitHubHTTPTimeout)
		defer cancel()
		list, err := client.UserRepos(ctx, user)
		return repos.LoadedMsg{Repos: list, Err: err}
	}
}

// persistHabits enqueues a whole-collection habit write.
func (m *Model) persistHabits() {
	habits := m.deps.Ledger.Habits()
	store := m.deps.Store
	m.deps.Outbox.Enqueue(outbox.Task{
		Name: "save habits",
		Persist: func() error {
			return store.SaveHabits(habits)
		},
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 4
		m.streaksModel.SetSize(msg.Width, contentHeight)
		m.libraryModel.SetSize(msg.Width, contentHeight)
		m.goalsModel.SetSize(msg.Width, contentHeight)
		m.reposModel.SetSize(msg.Width, contentHeight)
		return m, nil

	case feedSyncedMsg:
		m.refreshStreaks()
		return m, nil

	case repos.LoadedMsg:
		var cmd tea.Cmd
		m.reposModel, cmd = m.reposModel.Update(msg)
		return m, cmd

	case focustimer.TickMsg:
		var cmd tea.Cmd
		m.focusModel, cmd = m.focusModel.Update(msg)
		return m, cmd

	case focustimer.PhaseDoneMsg:
		log := m.focusModel.Timer.Log()
		store := m.deps.Store
		m.deps.Outbox.Enqueue(outbox.Task{
			Name: "save focus log",
			Persist: func() error {
				return store.SaveFocusLog(log)
			},
		})
		return m, nil

	case streaks.AddHabitMsg:
		return m.openHabitForm(), nil
	case streaks.ToggleHabitMsg:
		if m.deps.Ledger.ToggleCompletion(msg.ID, m.deps.Ledger.Today()) == ledger.Ok {
			m.persistHabits()
			m.refreshStreaks()
		}
		return m, nil
	case streaks.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.snippetToDeleteID = ""
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil
	case streaks.SyncFeedMsg:
		return m, m.syncFeedCmd()

	case library.AddSnippetMsg:
		return m.openSnippetForm(), nil
	case library.ViewSnippetMsg:
		if sn, ok := m.findSnippet(msg.ID); ok {
			m.viewingSnippet = sn
			m.previousState = m.state
			m.state = constants.StateViewSnippet
		}
		return m, nil
	case library.DeleteSnippetMsg:
		m.snippetToDeleteID = msg.ID
		m.habitToDeleteID = ""
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case goals.AddGoalMsg:
		return m.openGoalForm(), nil
	case goals.DeleteGoalMsg:
		if err := m.deps.Store.DeleteGoal(msg.ID); err == nil {
			m.refreshGoals()
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if handled, model, cmd := m.handleStateKeys(keyMsg); handled {
			return model, cmd
		}
	}

	// Form states route everything to the active form.
	switch m.state {
	case constants.StateAddHabit, constants.StateAddSnippet, constants.StateAddGoal:
		return m.updateForm(msg)
	}

	// Delegate to the active page.
	var cmd tea.Cmd
	switch m.state {
	case constants.StateStreaks:
		m.streaksModel, cmd = m.streaksModel.Update(msg)
	case constants.StateLibrary:
		m.libraryModel, cmd = m.libraryModel.Update(msg)
	case constants.StateGoals:
		m.goalsModel, cmd = m.goalsModel.Update(msg)
	case constants.StateFocus:
		m.focusModel, cmd = m.focusModel.Update(msg)
	case constants.StateRepos:
		m.reposModel, cmd = m.reposModel.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleStateKeys covers global navigation plus the modal states.
func (m Model) handleStateKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateConfirmDelete:
		switch msg.String() {
		case "y":
			m.applyPendingDelete()
			m.state = m.previousState
			return true, m, nil
		case "n", "esc":
			m.habitToDeleteID = ""
			m.snippetToDeleteID = ""
			m.state = m.previousState
			return true, m, nil
		}
		return true, m, nil

	case constants.StateViewSnippet:
		switch msg.String() {
		case "esc", "q", "enter":
			m.state = m.previousState
			return true, m, nil
		}
		return true, m, nil

	case constants.StateAddHabit, constants.StateAddSnippet, constants.StateAddGoal:
		if msg.Type == tea.KeyEsc {
			m.state = m.previousState
			m.formError = ""
			return true, m, nil
		}
		return false, m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return true, m, tea.Quit
	case "tab":
		m.state = nextPage(m.state)
		return true, m, nil
	case "shift+tab":
		m.state = prevPage(m.state)
		return true, m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return true, m, nil
	}
	return false, m, nil
}

var pageOrder = []constants.SessionState{
	constants.StateStreaks,
	constants.StateLibrary,
	constants.StateGoals,
	constants.StateFocus,
	constants.StateRepos,
}

func nextPage(s constants.SessionState) constants.SessionState {
	for i, p := range pageOrder {
		if p == s {
			return pageOrder[(i+1)%len(pageOrder)]
		}
	}
	return s
}

func prevPage(s constants.SessionState) constants.SessionState {
	for i, p := range pageOrder {
		if p == s {
			return pageOrder[(i+len(pageOrder)-1)%len(pageOrder)]
		}
	}
	return s
}

func (m *Model) applyPendingDelete() {
	if m.habitToDeleteID != "" {
		if m.deps.Ledger.RemoveHabit(m.habitToDeleteID) == ledger.Ok {
			m.persistHabits()
			m.refreshStreaks()
		}
		m.habitToDeleteID = ""
	}
	if m.snippetToDeleteID != "" {
		if err := m.deps.Store.DeleteSnippet(m.snippetToDeleteID); err == nil {
			m.refreshLibrary()
		}
		m.snippetToDeleteID = ""
	}
}

func (m *Model) findSnippet(id string) (models.Snippet, bool) {
	snippets, err := m.deps.Store.GetSnippets()
	if err != nil {
		return models.Snippet{}, false
	}
	for _, sn := range snippets {
		if sn.ID == id {
			return sn, true
		}
	}
	return models.Snippet{}, false
}

func (m *Model) refreshLibrary() {
	if snippets, err := m.deps.Store.GetSnippets(); err == nil {
		m.libraryModel.SetSnippets(snippets)
	}
}

func (m *Model) refreshGoals() {
	if goalList, err := m.deps.Store.GetGoals(); err == nil {
		m.goalsModel.SetGoals(goalList)
	}
}

func (m Model) openHabitForm() Model {
	m.habitForm = &HabitFormModel{Color: constants.DefaultHabitColor}

	colorOptions := make([]huh.Option[string], len(constants.HabitPalette))
	for i, c := range constants.HabitPalette {
		colorOptions[i] = huh.NewOption(c, c)
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Habit name").
			Value(&m.habitForm.Name),
		huh.NewSelect[string]().
			Title("Color").
			Options(colorOptions...).
			Value(&m.habitForm.Color),
	))
	m.previousState = m.state
	m.state = constants.StateAddHabit
	m.formError = ""
	return m
}

func (m Model) openSnippetForm() Model {
	m.snippetForm = &SnippetFormModel{}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&m.snippetForm.Title),
		huh.NewInput().
			Title("Category").
			Value(&m.snippetForm.Category),
		huh.NewText().
			Title("Content").
			Value(&m.snippetForm.Content),
	))
	m.previousState = m.state
	m.state = constants.StateAddSnippet
	m.formError = ""
	return m
}

func (m Model) openGoalForm() Model {
	m.goalForm = &GoalFormModel{Priority: string(constants.PriorityNormal)}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Task").
			Value(&m.goalForm.Task),
		huh.NewInput().
			Title("Project").
			Value(&m.goalForm.Project),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("Normal", string(constants.PriorityNormal)),
				huh.NewOption("High", string(constants.PriorityHigh)),
			).
			Value(&m.goalForm.Priority),
	))
	m.previousState = m.state
	m.state = constants.StateAddGoal
	m.formError = ""
	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case constants.StateAddHabit:
			if _, res := m.deps.Ledger.AddHabit(m.habitForm.Name, m.habitForm.Color); res == ledger.Rejected {
				m.formError = "Habit name must not be empty"
				m.state = m.previousState
				return m, cmd
			}
			m.persistHabits()
			m.refreshStreaks()

		case constants.StateAddSnippet:
			if m.snippetForm.Title == "" {
				m.formError = "Snippet title must not be empty"
				m.state = m.previousState
				return m, cmd
			}
			now := time.Now().UTC()
			sn := models.Snippet{
				ID:        uuid.New().String(),
				Title:     m.snippetForm.Title,
				Category:  m.snippetForm.Category,
				Content:   m.snippetForm.Content,
				Images:    []string{},
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := m.deps.Store.AddSnippet(sn); err != nil {
				m.formError = "Could not save snippet: " + err.Error()
			}
			m.refreshLibrary()

		case constants.StateAddGoal:
			if m.goalForm.Task == "" {
				m.formError = "Task must not be empty"
				m.state = m.previousState
				return m, cmd
			}
			goal := models.Goal{
				ID:       uuid.New().String(),
				Project:  m.goalForm.Project,
				Task:     m.goalForm.Task,
				Priority: constants.Priority(m.goalForm.Priority),
				Date:     m.deps.Ledger.Today(),
			}
			if err := m.deps.Store.AddGoal(goal); err != nil {
				m.formError = "Could not save directive: " + err.Error()
			}
			m.refreshGoals()
		}
		m.state = m.previousState

	case huh.StateAborted:
		m.state = m.previousState
	}

	return m, cmd
}
