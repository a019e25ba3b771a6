// Package markdown renders the snippet-archive markdown subset (headings,
// fenced code blocks, bullet lists, inline code) to styled terminal text.
package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	h1Style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).MarginTop(1)
	h2Style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginTop(1)
	h3Style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("211"))

	codeBlockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	inlineCodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")).
			Background(lipgloss.Color("236"))

	bulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Render converts markdown-subset content to styled terminal text. Unknown
// constructs pass through as plain lines; the renderer never fails.
func Render(content string) string {
	lines := strings.Split(content, "\n")
	var out []string

	inCode := false
	var code []string

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if inCode {
				out = append(out, codeBlockStyle.Render(strings.Join(code, "\n")))
				code = nil
			}
			inCode = !inCode
			continue
		}
		if inCode {
			code = append(code, line)
			continue
		}

		switch {
		case strings.HasPrefix(line, "### "):
			out = append(out, h3Style.Render(strings.TrimPrefix(line, "### ")))
		case strings.HasPrefix(line, "## "):
			out = append(out, h2Style.Render(strings.TrimPrefix(line, "## ")))
		case strings.HasPrefix(line, "# "):
			out = append(out, h1Style.Render(strings.TrimPrefix(line, "# ")))
		case strings.HasPrefix(line, "- "):
			out = append(out, bulletStyle.Render("• ")+renderInline(strings.TrimPrefix(line, "- ")))
		default:
			out = append(out, renderInline(line))
		}
	}

	// Unterminated fence: render what was collected rather than dropping it.
	if inCode && len(code) > 0 {
		out = append(out, codeBlockStyle.Render(strings.Join(code, "\n")))
	}

	return strings.Join(out, "\n")
}

// renderInline styles `code` spans and **bold** runs within a line.
func renderInline(line string) string {
	line = replacePairs(line, "`", func(s string) string {
		return inlineCodeStyle.Render(s)
	})
	line = replacePairs(line, "**", func(s string) string {
		return lipgloss.NewStyle().Bold(true).Render(s)
	})
	return line
}

// replacePairs applies style to text between pairs of the given marker.
// An unmatched trailing marker is left verbatim.
func replacePairs(line, marker string, style func(string) string) string {
	var b strings.Builder
	for {
		start := strings.Index(line, marker)
		if start < 0 {
			b.WriteString(line)
			return b.String()
		}
		rest := line[start+len(marker):]
		end := strings.Index(rest, marker)
		if end < 0 {
			b.WriteString(line)
			return b.String()
		}
		b.WriteString(line[:start])
		b.WriteString(style(rest[:end]))
		line = rest[end+len(marker):]
	}
}
