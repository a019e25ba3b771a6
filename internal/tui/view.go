package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/ledger"
	"github.com/asytuyf/genesis-vault/internal/markdown"
)

var pageTitles = []string{"Streaks", "Library", "Goals", "Focus", "Repos"}

// renderHeatmap draws the calendar heatmap, one glyph per day, one row per
// week. Cells darken with activity count.
func renderHeatmap(buckets []ledger.DayBucket) string {
	shades := []lipgloss.Color{"238", "22", "28", "34", "40"}

	var b strings.Builder
	for _, week := range ledger.WeekRows(buckets) {
		for _, cell := range week {
			if cell.Date == "" {
				b.WriteString("  ")
				continue
			}
			shade := cell.Count
			if shade >= len(shades) {
				shade = len(shades) - 1
			}
			b.WriteString(lipgloss.NewStyle().Foreground(shades[shade]).Render("■ "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(pageOrder))
	for i, page := range pageOrder {
		if page == m.state {
			tabs[i] = activeTabStyle.Render(pageTitles[i])
		} else {
			tabs[i] = inactiveTabStyle.Render(pageTitles[i])
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case constants.StateAddHabit, constants.StateAddSnippet, constants.StateAddGoal:
		return docStyle.Render(m.form.View())
	case constants.StateViewSnippet:
		return m.viewSnippet()
	case constants.StateConfirmDelete:
		return m.viewConfirmDelete()
	}

	var page string
	switch m.state {
	case constants.StateStreaks:
		page = m.streaksModel.View()
	case constants.StateLibrary:
		page = m.libraryModel.View()
	case constants.StateGoals:
		page = m.goalsModel.View()
	case constants.StateFocus:
		page = m.focusModel.View()
	case constants.StateRepos:
		page = m.reposModel.View()
	}

	sections := []string{m.renderTabs(), page}
	if m.formError != "" {
		sections = append(sections, errorStyle.Render(m.formError))
	}
	sections = append(sections, m.help.View(m))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewSnippet() string {
	body := markdown.Render("# " + m.viewingSnippet.Title + "\n" + m.viewingSnippet.Content)
	footer := inactiveTabStyle.Render("esc to go back")
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, "", footer))
}

func (m Model) viewConfirmDelete() string {
	subject := "this entry"
	if m.habitToDeleteID != "" {
		if h, ok := m.deps.Ledger.Habit(m.habitToDeleteID); ok {
			subject = "habit " + h.Name
		}
	}
	if m.snippetToDeleteID != "" {
		if sn, ok := m.findSnippet(m.snippetToDeleteID); ok {
			subject = "snippet " + sn.Title
		}
	}
	prompt := dangerStyle.Render("Delete "+subject+"?") + " (y/n)"
	return docStyle.Render(prompt)
}
