// Package streaks renders the habit dashboard page: the activity heatmap
// with the habit list and per-habit streak counts underneath.
package streaks

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asytuyf/genesis-vault/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type SyncFeedMsg struct{}

type Item struct {
	Habit   models.Habit
	Done    bool
	Current int
	Longest int
}

func (i Item) Title() string {
	mark := "○ "
	if i.Done {
		mark = "✓ "
	}
	return mark + i.Habit.Name
}

func (i Item) Description() string {
	return fmt.Sprintf("current %d · longest %d", i.Current, i.Longest)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Sync   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "t"),
			key.WithHelp("space", "toggle today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Sync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sync feed"),
		),
	}
}

type Model struct {
	list    list.Model
	keys    KeyMap
	heatmap string
	footer  string
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Streaks"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{
		list: l,
		keys: DefaultKeyMap(),
	}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// SetItems replaces the habit rows.
func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

// SetHeatmap replaces the rendered heatmap block shown above the list.
func (m *Model) SetHeatmap(heatmap string) {
	m.heatmap = heatmap
}

// SetFooter sets the sync status line shown under the list.
func (m *Model) SetFooter(footer string) {
	m.footer = footer
}

func (m *Model) SetSize(width, height int) {
	heatmapLines := lipgloss.Height(m.heatmap)
	m.list.SetSize(width, height-heatmapLines-2)
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (models.Habit, bool) {
	if it, ok := m.list.SelectedItem().(Item); ok {
		return it.Habit, true
	}
	return models.Habit{}, false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(keyMsg, m.keys.Toggle):
			if it, ok := m.list.SelectedItem().(Item); ok {
				id := it.Habit.ID
				return m, func() tea.Msg { return ToggleHabitMsg{ID: id} }
			}
		case key.Matches(keyMsg, m.keys.Delete):
			if it, ok := m.list.SelectedItem().(Item); ok {
				id := it.Habit.ID
				return m, func() tea.Msg { return DeleteHabitMsg{ID: id} }
			}
		case key.Matches(keyMsg, m.keys.Sync):
			return m, func() tea.Msg { return SyncFeedMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	parts := []string{m.heatmap, m.list.View()}
	if m.footer != "" {
		parts = append(parts, m.footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
