package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fmizzell/kanby"
)

const (
	defaultWidth   = 96
	minColumnWidth = 16
	modalWidth     = 44
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	savingStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	emptyStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	columnBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	activeColumnBorder = columnBorder.BorderForeground(lipgloss.Color("12"))
	selectedStyle      = lipgloss.NewStyle().Reverse(true)
	movingStyle        = lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color("11"))
	modalStyle         = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("12")).
				Padding(1, 2)

	priorityStyles = map[kanby.Priority]lipgloss.Style{
		kanby.PriorityLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		kanby.PriorityMid:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		kanby.PriorityHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}

	messageStyles = map[MessageKind]lipgloss.Style{
		KindInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		KindSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		KindWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		KindError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// View renders the board or the project manager
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	if m.showingProjects() {
		b.WriteString(m.projectsView())
	} else {
		b.WriteString(m.boardView())
	}
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m *Model) showingProjects() bool {
	switch m.mode {
	case modeProjects:
		return true
	case modePrompt:
		return m.promptBack == modeProjects
	case modeConfirm:
		return m.confirmBack == modeProjects
	}
	return false
}

func (m *Model) headerView() string {
	header := titleStyle.Render("Kanby · " + m.project)
	if m.saver != nil && m.saver.Busy() {
		header += " " + savingStyle.Render("saving…")
	}
	return header
}

func (m *Model) boardView() string {
	p := m.currentProject()
	if p == nil {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	// two border cells and two padding cells per column
	colWidth := width/len(kanby.Columns) - 4
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	cols := make([]string, 0, len(kanby.Columns))
	for i, name := range kanby.Columns {
		cols = append(cols, m.columnView(i, name, p.Columns[name], colWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *Model) columnView(idx int, name string, tasks []kanby.Task, width int) string {
	lines := []string{headerStyle.Render(fmt.Sprintf("%s (%d)", name, len(tasks)))}
	if len(tasks) == 0 {
		lines = append(lines, emptyStyle.Render("empty"))
	}
	for i, t := range tasks {
		marker := priorityStyles[t.Priority].Render(fmt.Sprintf("[%s]", priorityLetter(t.Priority)))
		title := truncate(t.Title, width-4)
		switch {
		case idx == m.col && i == m.row && m.mode == modeMove:
			title = movingStyle.Render(title)
		case idx == m.col && i == m.row:
			title = selectedStyle.Render(title)
		}
		lines = append(lines, marker+" "+title)
	}

	style := columnBorder
	if idx == m.col {
		style = activeColumnBorder
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) projectsView() string {
	lines := []string{headerStyle.Render("Project Manager"), ""}
	for i, name := range m.ws.ProjectNames() {
		label := "  " + truncate(name, modalWidth-6)
		if i == m.projectSel {
			label = selectedStyle.Render("> " + truncate(name, modalWidth-6))
		}
		if name == m.project {
			label += " " + savingStyle.Render("(current)")
		}
		lines = append(lines, label)
	}
	return modalStyle.Width(modalWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) footerView() string {
	switch m.mode {
	case modePrompt:
		return m.input.View()
	case modeConfirm:
		return messageStyles[KindWarning].Render(m.question)
	}

	var status string
	if msg, ok := m.messages.Current(); ok {
		status = messageStyles[msg.Kind].Render(msg.Text)
	}

	var helpView string
	switch m.mode {
	case modeMove:
		helpView = "MOVE MODE  " + m.help.ShortHelpView(m.keys.moveHelp())
	case modeProjects:
		helpView = m.help.ShortHelpView(m.keys.projectHelp())
	default:
		helpView = m.help.View(m.keys)
	}
	return status + "\n" + helpView
}

func priorityLetter(p kanby.Priority) string {
	if p == "" {
		return "?"
	}
	return string(p)[:1]
}

func truncate(s string, max int) string {
	if max <= 1 || lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
