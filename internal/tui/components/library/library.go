// Package library renders the snippet archive page.
package library

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asytuyf/genesis-vault/internal/models"
)

type AddSnippetMsg struct{}

type ViewSnippetMsg struct {
	ID string
}

type DeleteSnippetMsg struct {
	ID string
}

type Item struct {
	Snippet models.Snippet
}

func (i Item) Title() string { return i.Snippet.Title }

func (i Item) Description() string {
	if i.Snippet.Category != "" {
		return i.Snippet.Category
	}
	return "uncategorized"
}

func (i Item) FilterValue() string { return i.Snippet.Title }

type KeyMap struct {
	Add    key.Binding
	Open   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
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

func New(snippets []models.Snippet, width, height int) Model {
	l := list.New(toListItems(snippets), list.NewDefaultDelegate(), width, height)
	l.Title = "Library"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return Model{list: l, keys: DefaultKeyMap()}
}

func toListItems(snippets []models.Snippet) []list.Item {
	out := make([]list.Item, len(snippets))
	for i, sn := range snippets {
		out[i] = Item{Snippet: sn}
	}
	return out
}

func (m *Model) SetSnippets(snippets []models.Snippet) {
	m.list.SetItems(toListItems(snippets))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Selected() (models.Snippet, bool) {
	if it, ok := m.list.SelectedItem().(Item); ok {
		return it.Snippet, true
	}
	return models.Snippet{}, false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(keyMsg, m.keys.Add):
			return m, func() tea.Msg { return AddSnippetMsg{} }
		case key.Matches(keyMsg, m.keys.Open):
			if it, ok := m.list.SelectedItem().(Item); ok {
				id := it.Snippet.ID
				return m, func() tea.Msg { return ViewSnippetMsg{ID: id} }
			}
		case key.Matches(keyMsg, m.keys.Delete):
			if it, ok := m.list.SelectedItem().(Item); ok {
				id := it.Snippet.ID
				return m, func() tea.Msg { return DeleteSnippetMsg{ID: id} }
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
