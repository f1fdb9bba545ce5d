package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/taskboard/internal/board"
	"github.com/simonbystrom/taskboard/internal/engine"
)

type columnCreatedMsg struct {
	column board.Column
	err    error
}

type newColumnCancelMsg struct{}

type newColumnModel struct {
	engine     *engine.Engine
	styles     Styles
	input      textinput.Model
	submitting bool
	err        string
	width      int
}

func newNewColumn(s Styles, eng *engine.Engine, width int) newColumnModel {
	ti := textinput.New()
	ti.Placeholder = "column name (e.g. Review)"
	ti.CharLimit = 100
	ti.PromptStyle = s.WizardActive
	ti.Focus()

	return newColumnModel{
		engine: eng,
		styles: s,
		input:  ti,
		width:  width,
	}
}

func (m newColumnModel) Init() tea.Cmd {
	return textinput.Blink
}

func createColumnCmd(eng *engine.Engine, name string) tea.Cmd {
	return func() tea.Msg {
		col, err := eng.CreateColumn(context.Background(), name)
		return columnCreatedMsg{column: col, err: err}
	}
}

func (m newColumnModel) Update(msg tea.Msg) (newColumnModel, tea.Cmd) {
	switch msg := msg.(type) {
	case columnCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = fmt.Sprintf("Failed to create column: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return newColumnCancelMsg{} }
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.err = engine.ErrBlankColumnName.Error()
				return m, nil
			}
			m.err = ""
			m.submitting = true
			return m, createColumnCmd(m.engine, name)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m newColumnModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.WizardTitle.Render("New column"))
	b.WriteString("\n")
	b.WriteString("  " + m.input.View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(m.styles.WizardDim.Render("  Creating column..."))
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("  " + m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("  enter: create │ esc: cancel"))

	return b.String()
}
