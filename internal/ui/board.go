package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/taskboard/internal/board"
	"github.com/simonbystrom/taskboard/internal/config"
	"github.com/simonbystrom/taskboard/internal/engine"
)

const maxNotifications = 10

type notification struct {
	text  string
	time  time.Time
	style lipgloss.Style
}

type boardLoadedMsg struct {
	project string
	err     error
}

type moveResultMsg struct {
	taskID   string
	taskName string
	err      error
}

type openDetailMsg struct {
	taskID string
}

type boardModel struct {
	engine  *engine.Engine
	styles  Styles
	layout  config.Layout
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// Cursor position by column index and card index. While dragging it
	// follows the ghost.
	col int
	row int

	gesture board.Gesture
	ghost   board.Location

	pending       int
	loading       bool
	notifications []notification
	width         int
	height        int
}

func newBoard(s Styles, layout config.Layout, eng *engine.Engine) boardModel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(s.Spinner),
	)
	h := help.New()
	h.Styles.ShortKey = s.Help
	h.Styles.ShortDesc = s.Help
	h.Styles.FullKey = s.Help
	h.Styles.FullDesc = s.Help

	return boardModel{
		engine:  eng,
		styles:  s,
		layout:  layout,
		keys:    newKeyMap(),
		help:    h,
		spinner: sp,
	}
}

func loadBoardCmd(eng *engine.Engine) tea.Cmd {
	project := eng.Project()
	return func() tea.Msg {
		return boardLoadedMsg{project: project, err: eng.Load(context.Background())}
	}
}

func commitCmd(eng *engine.Engine, p *engine.PendingMove, taskName string) tea.Cmd {
	return func() tea.Msg {
		err := eng.Commit(context.Background(), p)
		_ = p.Finish()
		return moveResultMsg{taskID: p.Request.TaskID, taskName: taskName, err: err}
	}
}

// load starts a board fetch for the engine's current project.
func (m *boardModel) load() tea.Cmd {
	if m.engine.Project() == "" {
		return nil
	}
	m.loading = true
	return loadBoardCmd(m.engine)
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m *boardModel) notify(text string, style lipgloss.Style) {
	m.notifications = append(m.notifications, notification{
		text:  text,
		time:  time.Now(),
		style: style,
	})
	if len(m.notifications) > maxNotifications {
		m.notifications = m.notifications[len(m.notifications)-maxNotifications:]
	}
}

func (m boardModel) dragging() bool {
	return m.gesture.Active()
}

// startSync counts a new in-flight write and starts the spinner when it is
// the first one.
func (m *boardModel) startSync() tea.Cmd {
	m.pending++
	if m.pending == 1 {
		return m.spinner.Tick
	}
	return nil
}

func (m boardModel) Update(msg tea.Msg) (boardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.project != m.engine.Project() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.notify(fmt.Sprintf("Failed to load board: %v", msg.err), m.styles.Error)
		}
		m.clampCursor()
		return m, nil

	case moveResultMsg:
		if m.pending > 0 {
			m.pending--
		}
		if msg.err != nil {
			name := msg.taskName
			if name == "" {
				name = msg.taskID
			}
			m.notify(fmt.Sprintf("Failed to update task %s: %v", name, msg.err), m.styles.Error)
			if !m.dragging() {
				m.clampCursor()
			}
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.dragging() {
			return m.updateDragging(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m boardModel) updateBrowsing(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	mdl := m.engine.Model()
	cols := mdl.OrderedColumns()

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Right):
		if m.col < len(cols)-1 {
			m.col++
		}
		m.clampCursor()
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.col < len(cols) && m.row < len(cols[m.col].TaskIDs)-1 {
			m.row++
		}
	case key.Matches(msg, m.keys.Grab):
		taskID, ok := m.focusedTask(mdl)
		if !ok {
			return m, nil
		}
		src := board.Location{ColumnID: cols[m.col].ID, Index: m.row}
		if err := m.gesture.Start(taskID, src); err != nil {
			m.notify(err.Error(), m.styles.Error)
			return m, nil
		}
		m.ghost = src
	case key.Matches(msg, m.keys.Detail):
		taskID, ok := m.focusedTask(mdl)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return openDetailMsg{taskID: taskID} }
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m boardModel) updateDragging(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	mdl := m.engine.Model()
	cols := mdl.OrderedColumns()
	taskID := m.gesture.TaskID()

	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		i := columnIndex(cols, m.ghost.ColumnID)
		if key.Matches(msg, m.keys.Left) && i > 0 {
			i--
		} else if key.Matches(msg, m.keys.Right) && i < len(cols)-1 {
			i++
		}
		if i < 0 {
			return m, nil
		}
		m.ghost.ColumnID = cols[i].ID
		m.ghost.Index = min(m.ghost.Index, slots(cols[i], taskID))
	case key.Matches(msg, m.keys.Up):
		if m.ghost.Index > 0 {
			m.ghost.Index--
		}
	case key.Matches(msg, m.keys.Down):
		if i := columnIndex(cols, m.ghost.ColumnID); i >= 0 && m.ghost.Index < slots(cols[i], taskID) {
			m.ghost.Index++
		}
	case key.Matches(msg, m.keys.Cancel):
		src := m.gesture.Source()
		_ = m.gesture.Cancel()
		m.col = max(columnIndex(cols, src.ColumnID), 0)
		m.row = src.Index
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.Grab):
		return m.drop(mdl)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.col = max(columnIndex(cols, m.ghost.ColumnID), 0)
	m.row = m.ghost.Index
	return m, nil
}

// drop applies the drag at the ghost position. The board changes before
// the returned command issues the write.
func (m boardModel) drop(mdl board.Model) (boardModel, tea.Cmd) {
	taskID := m.gesture.TaskID()
	taskName := mdl.Tasks[taskID].Name
	dst := m.ghost

	p, err := m.engine.Drop(m.gesture, &dst)
	m.gesture = board.Gesture{}
	if err != nil {
		m.notify(fmt.Sprintf("Failed to update task %s: %v", taskName, err), m.styles.Error)
		m.clampCursor()
		return m, nil
	}

	m.col = max(columnIndex(m.engine.Model().OrderedColumns(), dst.ColumnID), 0)
	m.row = dst.Index
	m.clampCursor()
	if p == nil {
		return m, nil
	}
	spin := m.startSync()
	return m, tea.Batch(commitCmd(m.engine, p, taskName), spin)
}

func (m boardModel) focusedTask(mdl board.Model) (string, bool) {
	cols := mdl.OrderedColumns()
	if m.col >= len(cols) {
		return "", false
	}
	ids := cols[m.col].TaskIDs
	if m.row < 0 || m.row >= len(ids) {
		return "", false
	}
	return ids[m.row], true
}

func (m *boardModel) clampCursor() {
	cols := m.engine.Model().OrderedColumns()
	if len(cols) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = max(0, min(m.col, len(cols)-1))
	n := len(cols[m.col].TaskIDs)
	m.row = max(0, min(m.row, n-1))
}

// focusColumn moves the cursor to the column with the given id.
func (m *boardModel) focusColumn(id string) {
	if i := columnIndex(m.engine.Model().OrderedColumns(), id); i >= 0 {
		m.col = i
		m.row = 0
	}
}

// reset clears per-board state after a project switch.
func (m *boardModel) reset() {
	m.col, m.row = 0, 0
	m.gesture = board.Gesture{}
	m.ghost = board.Location{}
}

func columnIndex(cols []board.Column, id string) int {
	for i, c := range cols {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// slots is the highest ghost index in col for the dragged task.
func slots(col board.Column, taskID string) int {
	n := len(col.TaskIDs)
	for _, id := range col.TaskIDs {
		if id == taskID {
			return n - 1
		}
	}
	return n
}

// ghostModel returns mdl with taskID drawn at the ghost location.
func ghostModel(mdl board.Model, taskID string, ghost board.Location) board.Model {
	if src, ok := mdl.ColumnOf(taskID); ok {
		ids := make([]string, 0, len(src.TaskIDs))
		for _, id := range src.TaskIDs {
			if id != taskID {
				ids = append(ids, id)
			}
		}
		src.TaskIDs = ids
		mdl.Columns[src.ID] = src
	}
	dst, ok := mdl.Columns[ghost.ColumnID]
	if !ok {
		return mdl
	}
	i := max(0, min(ghost.Index, len(dst.TaskIDs)))
	ids := make([]string, 0, len(dst.TaskIDs)+1)
	ids = append(ids, dst.TaskIDs[:i]...)
	ids = append(ids, taskID)
	ids = append(ids, dst.TaskIDs[i:]...)
	dst.TaskIDs = ids
	mdl.Columns[dst.ID] = dst
	return mdl
}

func (m boardModel) columnWidth() int {
	if m.layout.ColumnWidth < 12 {
		return 12
	}
	return m.layout.ColumnWidth
}

// visibleRange picks the window of columns to draw so the cursor column is
// on screen.
func visibleRange(n, cursor, fit int) (int, int) {
	if fit <= 0 || n <= fit {
		return 0, n
	}
	start := cursor - fit/2
	start = max(0, min(start, n-fit))
	return start, start + fit
}

func (m boardModel) priorityLabel(p board.Priority) string {
	switch p {
	case board.PriorityHigh:
		return m.styles.PriorityHigh.Render("high")
	case board.PriorityMedium:
		return m.styles.PriorityMed.Render("med")
	case board.PriorityLow:
		return m.styles.PriorityLow.Render("low")
	}
	return m.styles.WizardDim.Render("-")
}

func (m boardModel) renderCard(t board.Task, selected, dragged bool) string {
	w := m.columnWidth()
	marker := "  "
	if dragged {
		marker = "▶ "
	}
	name := truncate(t.Name, w-2)
	if t.Status == board.StatusDone {
		name = m.styles.Done.Render(name)
	}
	meta := "  " + m.priorityLabel(t.Priority)
	if in := t.Initials(); in != "" {
		meta += " " + m.styles.WizardDim.Render(in)
	}
	card := marker + name + "\n" + meta

	switch {
	case dragged:
		return m.styles.Dragging.Width(w).Render(card)
	case selected:
		return m.styles.Selected.Width(w).Render(card)
	}
	return m.styles.Card.Width(w).Render(card)
}

func (m boardModel) renderColumn(mdl board.Model, col board.Column, focused bool) string {
	var b strings.Builder
	w := m.columnWidth()

	title := fmt.Sprintf("%s (%d)", col.Title, len(col.TaskIDs))
	b.WriteString(m.styles.Header.Render(truncate(title, w)))
	b.WriteString("\n")

	if len(col.TaskIDs) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.WizardDim.Render("  empty"))
	}
	for i, id := range col.TaskIDs {
		t, ok := mdl.Tasks[id]
		if !ok {
			continue
		}
		dragged := m.dragging() && id == m.gesture.TaskID()
		b.WriteString("\n")
		b.WriteString(m.renderCard(t, focused && i == m.row, dragged))
	}

	style := m.styles.Column
	if focused {
		style = m.styles.ColumnFocus
	}
	return style.Width(w + 2).Render(b.String())
}

func (m boardModel) ViewContent() string {
	var b strings.Builder

	project := m.engine.Project()
	if project == "" {
		project = "-"
	}
	b.WriteString(m.styles.Title.Render("taskboard │ project: " + project))
	b.WriteString("\n\n")

	mdl := m.engine.Model()
	if m.dragging() {
		mdl = ghostModel(mdl, m.gesture.TaskID(), m.ghost)
	}
	cols := mdl.OrderedColumns()

	switch {
	case len(cols) == 0 && m.loading:
		b.WriteString(m.styles.WizardDim.Render("  Loading board..."))
		b.WriteString("\n")
	case len(cols) == 0:
		b.WriteString(m.styles.WizardDim.Render("  No columns. Press n to create one."))
		b.WriteString("\n")
	default:
		fit := len(cols)
		if m.width > 0 {
			fit = max(1, (m.width-8)/(m.columnWidth()+6))
		}
		start, end := visibleRange(len(cols), m.col, fit)
		rendered := make([]string, 0, end-start+2)
		if start > 0 {
			rendered = append(rendered, m.styles.WizardDim.Render(fmt.Sprintf("◀ %d ", start)))
		}
		for i := start; i < end; i++ {
			rendered = append(rendered, m.renderColumn(mdl, cols[i], i == m.col))
		}
		if end < len(cols) {
			rendered = append(rendered, m.styles.WizardDim.Render(fmt.Sprintf(" %d ▶", len(cols)-end)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		b.WriteString("\n")
	}

	if m.dragging() {
		b.WriteString("\n")
		b.WriteString(m.styles.Dragging.Render("  Moving card: arrows to place, space to drop, esc to cancel"))
		b.WriteString("\n")
	}

	if m.pending > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s syncing %d change(s)", m.spinner.View(), m.pending))
		b.WriteString("\n")
	}

	// Notifications (newest first)
	if len(m.notifications) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("  ── Notifications ──"))
		b.WriteString("\n")
		for i := len(m.notifications) - 1; i >= 0; i-- {
			n := m.notifications[i]
			line := fmt.Sprintf("  %s %s", n.time.Format("15:04"), n.text)
			b.WriteString(n.style.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + m.help.View(m.keys))

	return b.String()
}

func (m boardModel) View() string {
	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 80
	}
	return m.styles.Border.Width(maxWidth).Render(m.ViewContent())
}

func truncate(s string, limit int) string {
	if lipgloss.Width(s) <= limit {
		return s
	}
	r := []rune(s)
	if limit <= 3 {
		return string(r[:min(limit, len(r))])
	}
	return string(r[:min(limit-3, len(r))]) + "..."
}
