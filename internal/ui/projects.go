package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/taskboard/internal/board"
	"github.com/simonbystrom/taskboard/internal/engine"
)

// projectItem implements list.DefaultItem for the project picker list.
type projectItem struct {
	project board.Project
	current bool
}

func (p projectItem) Title() string {
	if p.current {
		return p.project.Name + " (current)"
	}
	return p.project.Name
}

func (p projectItem) Description() string { return p.project.ID }
func (p projectItem) FilterValue() string { return p.project.Name }

type projectsLoadedMsg struct {
	projects []board.Project
	err      error
}

type projectSelectedMsg struct {
	project board.Project
}

type projectsCancelMsg struct{}

type projectsModel struct {
	engine  *engine.Engine
	styles  Styles
	list    list.Model
	loading bool
	err     string
	width   int
}

func newProjects(s Styles, eng *engine.Engine, width int) projectsModel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(s.WizardActive.GetForeground()).
		Foreground(s.WizardActive.GetForeground()).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().Padding(0, 0, 0, 2)
	delegate.Styles.DimmedTitle = lipgloss.NewStyle().
		Foreground(s.WizardDim.GetForeground()).
		Padding(0, 0, 0, 2)

	listWidth := max(width-8, 20)
	pl := list.New([]list.Item{}, delegate, listWidth, 15)
	pl.SetShowTitle(false)
	pl.SetShowStatusBar(false)
	pl.SetShowHelp(false)
	pl.SetFilteringEnabled(true)
	pl.DisableQuitKeybindings()
	pl.KeyMap.ShowFullHelp.SetEnabled(false)
	pl.KeyMap.CloseFullHelp.SetEnabled(false)
	pl.FilterInput.Prompt = "Filter: "
	pl.FilterInput.PromptStyle = s.WizardActive

	return projectsModel{
		engine:  eng,
		styles:  s,
		list:    pl,
		loading: true,
		width:   width,
	}
}

func (m projectsModel) Init() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		projects, err := eng.Projects(context.Background())
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m projectsModel) Update(msg tea.Msg) (projectsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = fmt.Sprintf("Failed to load projects: %v", msg.err)
			return m, nil
		}
		current := m.engine.Project()
		items := make([]list.Item, 0, len(msg.projects))
		selected := 0
		for i, p := range msg.projects {
			items = append(items, projectItem{project: p, current: p.ID == current})
			if p.ID == current {
				selected = i
			}
		}
		cmd := m.list.SetItems(items)
		m.list.Select(selected)
		return m, cmd

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return projectsCancelMsg{} }
		case "enter":
			item, ok := m.list.SelectedItem().(projectItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return projectSelectedMsg{project: item.project} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m projectsModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.WizardTitle.Render("Select project"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.WizardDim.Render("  Loading projects..."))
		b.WriteString("\n")
	case len(m.list.Items()) == 0 && m.err == "":
		b.WriteString(m.styles.WizardDim.Render("  No projects available."))
		b.WriteString("\n")
	default:
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("  " + m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("  enter: open │ /: filter │ esc: back"))

	return b.String()
}
