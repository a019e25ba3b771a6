// Package repos renders the public repository showcase page. Repositories
// load asynchronously; the page shows a placeholder until the fetch lands.
package repos

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asytuyf/genesis-vault/internal/models"
)

// LoadedMsg carries the fetch result.
type LoadedMsg struct {
	Repos []models.Repo
	Err   error
}

type Item struct {
	Repo models.Repo
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  ★ %d", i.Repo.Name, i.Repo.Stars)
}

func (i Item) Description() string {
	desc := i.Repo.Description
	if desc == "" {
		desc = "no description"
	}
	if i.Repo.Language != "" {
		desc = i.Repo.Language + " · " + desc
	}
	return desc
}

func (i Item) FilterValue() string { return i.Repo.Name + " " + i.Repo.Language }

type Model struct {
	list    list.Model
	loading bool
	err     error
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Showcase"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return Model{list: l, loading: true}
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(LoadedMsg); ok {
		m.loading = false
		m.err = loaded.Err
		items := make([]list.Item, len(loaded.Repos))
		for i, r := range loaded.Repos {
			items[i] = Item{Repo: r}
		}
		m.list.SetItems(items)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return "Loading repositories..."
	}
	if m.err != nil {
		return fmt.Sprintf("Could not load repositories: %v", m.err)
	}
	return m.list.View()
}
