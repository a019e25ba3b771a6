// Package goals renders the directive log page.
package goals

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
)

type AddGoalMsg struct{}

type DeleteGoalMsg struct {
	ID string
}

type Item struct {
	Goal models.Goal
}

func (i Item) Title() string {
	if i.Goal.Priority == constants.PriorityHigh {
		return "! " + i.Goal.Task
	}
	return i.Goal.Task
}

func (i Item) Description() string {
	desc := i.Goal.Date
	if i.Goal.Project != "" {
		desc += " · " + i.Goal.Project
	}
	return desc
}

func (i Item) FilterValue() string { return i.Goal.Task }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(goalList []models.Goal, width, height int) Model {
	l := list.New(toListItems(goalList), list.NewDefaultDelegate(), width, height)
	l.Title = "Directives"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return Model{list: l, keys: DefaultKeyMap()}
}

// toListItems orders directives newest day first.
func toListItems(goalList []models.Goal) []list.Item {
	sorted := make([]models.Goal, len(goalList))
	copy(sorted, goalList)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	out := make([]list.Item, len(sorted))
	for i, g := range sorted {
		out[i] = Item{Goal: g}
	}
	return out
}

func (m *Model) SetGoals(goalList []models.Goal) {
	m.list.SetItems(toListItems(goalList))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(keyMsg, m.keys.Add):
			return m, func() tea.Msg { return AddGoalMsg{} }
		case key.Matches(keyMsg, m.keys.Delete):
			if it, ok := m.list.SelectedItem().(Item); ok {
				id := it.Goal.ID
				return m, func() tea.Msg { return DeleteGoalMsg{ID: id} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
