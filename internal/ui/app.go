package ui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/taskboard/internal/config"
	"github.com/simonbystrom/taskboard/internal/engine"
)

type view int

const (
	viewBoard view = iota
	viewNewColumn
	viewDetail
	viewProjects
)

type AppModel struct {
	engine     *engine.Engine
	styles     Styles
	activeView view

	board     boardModel
	newColumn newColumnModel
	detail    detailModel
	projects  projectsModel

	width  int
	height int
}

// NewApp builds the root model. Without a selected project the app opens
// on the project picker.
func NewApp(cfg config.Config, eng *engine.Engine) AppModel {
	s := NewStyles(cfg.Colors)
	m := AppModel{
		engine:     eng,
		styles:     s,
		activeView: viewBoard,
		board:      newBoard(s, cfg.Layout, eng),
	}
	if eng.Project() == "" {
		m.activeView = viewProjects
		m.projects = newProjects(s, eng, 0)
	} else {
		m.board.loading = true
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	if m.activeView == viewProjects {
		return m.projects.Init()
	}
	return loadBoardCmd(m.engine)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.board.width = msg.Width
		m.board.height = msg.Height
		m.board.help.Width = msg.Width - 8
		m.newColumn.width = msg.Width
		m.detail = m.detail.setSize(msg.Width, msg.Height)
		if m.activeView == viewProjects {
			m.projects.width = msg.Width
			m.projects.list.SetSize(max(msg.Width-8, 20), max(msg.Height-12, 5))
		}
		return m, nil

	case boardLoadedMsg, moveResultMsg, spinner.TickMsg:
		// Always forward to the board so notifications and the sync
		// spinner stay current whatever view is active.
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd

	case openDetailMsg:
		t, ok := m.engine.Task(msg.taskID)
		if !ok {
			m.board.notify(fmt.Sprintf("Task %s no longer exists", msg.taskID), m.styles.Error)
			return m, nil
		}
		m.activeView = viewDetail
		m.detail = newDetail(m.styles, t, m.width, m.height)
		return m, nil

	case detailCloseMsg:
		m.activeView = viewBoard
		return m, nil

	case columnCreatedMsg:
		if msg.err != nil {
			m.board.notify(fmt.Sprintf("Failed to create column: %v", msg.err), m.styles.Error)
			var cmd tea.Cmd
			m.newColumn, cmd = m.newColumn.Update(msg)
			return m, cmd
		}
		m.activeView = viewBoard
		m.board.focusColumn(msg.column.ID)
		m.board.notify(fmt.Sprintf("Column %s created", msg.column.Title), m.styles.Success)
		return m, nil

	case newColumnCancelMsg:
		m.activeView = viewBoard
		return m, nil

	case projectSelectedMsg:
		m.activeView = viewBoard
		if msg.project.ID == m.engine.Project() {
			return m, nil
		}
		slog.Debug("switching project", "from", m.engine.Project(), "to", msg.project.ID)
		m.engine.SelectProject(msg.project.ID)
		m.board.reset()
		return m, m.board.load()

	case projectsCancelMsg:
		m.activeView = viewBoard
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.activeView {
	case viewBoard:
		return m.updateBoard(msg)
	case viewNewColumn:
		var cmd tea.Cmd
		m.newColumn, cmd = m.newColumn.Update(msg)
		return m, cmd
	case viewDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case viewProjects:
		var cmd tea.Cmd
		m.projects, cmd = m.projects.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m AppModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.board.dragging() {
		switch keyMsg.String() {
		case "q":
			return m, tea.Quit
		case "n":
			if m.engine.Project() == "" {
				m.board.notify("Select a project first", m.styles.Error)
				return m, nil
			}
			m.activeView = viewNewColumn
			m.newColumn = newNewColumn(m.styles, m.engine, m.width)
			return m, m.newColumn.Init()
		case "p":
			m.activeView = viewProjects
			m.projects = newProjects(m.styles, m.engine, m.width)
			if m.height > 0 {
				m.projects.list.SetSize(max(m.width-8, 20), max(m.height-12, 5))
			}
			return m, m.projects.Init()
		}
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	switch m.activeView {
	case viewNewColumn:
		return m.panel(m.newColumn.ViewContent())
	case viewDetail:
		return m.panel(m.detail.ViewContent())
	case viewProjects:
		return m.panel(m.projects.ViewContent())
	default:
		return m.board.View()
	}
}

func (m AppModel) panel(content string) string {
	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 80
	}
	return m.styles.Border.Width(maxWidth).Render(content)
}
