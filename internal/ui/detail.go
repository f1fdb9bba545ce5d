package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/taskboard/internal/board"
)

type detailCloseMsg struct{}

type detailModel struct {
	styles   Styles
	task     board.Task
	viewport viewport.Model
}

func newDetail(s Styles, t board.Task, width, height int) detailModel {
	d := detailModel{styles: s, task: t}
	d.viewport = viewport.New(max(width-8, 40), max(height-10, 8))
	d.viewport.SetContent(d.body())
	return d
}

func (m detailModel) setSize(width, height int) detailModel {
	m.viewport.Width = max(width-8, 40)
	m.viewport.Height = max(height-10, 8)
	return m
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "enter", "q":
			return m, func() tea.Msg { return detailCloseMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m detailModel) row(label, value string) string {
	if value == "" {
		value = "-"
	}
	return m.styles.Label.Render(label) + value
}

func (m detailModel) body() string {
	t := m.task
	rows := []string{
		m.row("Column", t.GroupName),
		m.row("Status", strings.ReplaceAll(string(t.Status), "_", " ")),
		m.row("Priority", string(t.Priority)),
		m.row("Start", t.StartDate.String()),
		m.row("Due", t.EndDate.String()),
	}

	if len(t.Assignments) == 0 {
		rows = append(rows, m.row("Assignees", ""))
	}
	for i, a := range t.Assignments {
		label := ""
		if i == 0 {
			label = "Assignees"
		}
		who := a.MemberName
		if a.Email != "" {
			who += " <" + a.Email + ">"
		}
		rows = append(rows, m.row(label, who))
	}
	return strings.Join(rows, "\n")
}

func (m detailModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.WizardTitle.Render(m.task.Name))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("  esc: back"))

	return b.String()
}
