package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Syuf1514/video-labeler/internal/render"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	onStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	logStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(counterStyle.Render(render.Counter(m.res)))
	b.WriteString("  ")
	b.WriteString(titleStyle.Render(render.Title(m.res)))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("sort: " + m.res.Sort.String() + "   source: " + m.res.Source))
	b.WriteString("\n")

	if item := m.res.Item; item != nil {
		b.WriteString(sectionStyle.Render("labels"))
		b.WriteString("\n")
		if len(item.Labels) == 0 {
			b.WriteString(faintStyle.Render("no label columns, press a to add one"))
			b.WriteString("\n")
		}
		for _, l := range item.Labels {
			line := render.LabelLine(l)
			if l.Value {
				line = onStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}

		b.WriteString(sectionStyle.Render("metadata"))
		b.WriteString("\n")
		meta, err := render.Metadata(item.Metadata)
		if err != nil {
			meta = err.Error() + "\n"
		}
		b.WriteString(faintStyle.Render(strings.TrimRight(meta, "\n")))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("no items, press f to open a table"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode != modeBrowse {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if m.status != "" {
		if m.statusErr {
			b.WriteString(errStyle.Render(m.status))
		} else {
			b.WriteString(okStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	if m.showLog {
		panel := strings.Join(m.logLines, "\n")
		if panel == "" {
			panel = "(log is empty)"
		}
		style := logStyle
		if m.width > 4 {
			style = style.Width(m.width - 2)
		}
		b.WriteString(style.Render(panel))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}
