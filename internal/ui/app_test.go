package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/taskboard/internal/board"
	"github.com/simonbystrom/taskboard/internal/config"
	"github.com/simonbystrom/taskboard/internal/engine"
)

func newTestApp(t *testing.T) (AppModel, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	eng := newLoadedEngine(t, api)
	return NewApp(config.Default(), eng), api
}

func TestAppModel_KeyQ_Quits(t *testing.T) {
	m, _ := newTestApp(t)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected a command from 'q' key")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
}

func TestAppModel_KeyQ_IgnoredWhileDragging(t *testing.T) {
	m, _ := newTestApp(t)

	updated, _ := m.Update(keySpace)
	updated, cmd := updated.Update(runes("q"))
	app := updated.(AppModel)

	if !app.board.dragging() {
		t.Error("expected drag to still be active")
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q should not quit mid-drag")
		}
	}
}

func TestAppModel_WindowSizeMsg(t *testing.T) {
	m, _ := newTestApp(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app := updated.(AppModel)

	if app.width != 120 {
		t.Errorf("width = %d, want 120", app.width)
	}
	if app.board.height != 40 {
		t.Errorf("board height = %d, want 40", app.board.height)
	}
}

func TestAppModel_NoProjectOpensPicker(t *testing.T) {
	api := newFakeAPI()
	eng := engine.New(api, board.NewStore())
	m := NewApp(config.Default(), eng)

	if m.activeView != viewProjects {
		t.Fatalf("activeView = %d, want %d (viewProjects)", m.activeView, viewProjects)
	}

	msg, ok := m.Init()().(projectsLoadedMsg)
	if !ok {
		t.Fatal("expected Init to load projects")
	}
	updated, _ := m.Update(msg)
	app := updated.(AppModel)
	if n := len(app.projects.list.Items()); n != 2 {
		t.Fatalf("picker has %d items, want 2", n)
	}

	updated, cmd := app.Update(keyEnter)
	sel, ok := cmd().(projectSelectedMsg)
	if !ok || sel.project.ID != "p1" {
		t.Fatalf("got %+v, want selection of p1", sel)
	}

	updated, cmd = updated.Update(sel)
	app = updated.(AppModel)
	if app.activeView != viewBoard {
		t.Errorf("activeView = %d, want %d (viewBoard)", app.activeView, viewBoard)
	}
	if eng.Project() != "p1" {
		t.Errorf("project = %q, want p1", eng.Project())
	}
	if !app.board.loading {
		t.Error("expected board to be loading after selection")
	}

	updated, _ = updated.Update(cmd())
	app = updated.(AppModel)
	if app.board.loading {
		t.Error("expected loading to finish")
	}
	if n := len(eng.Model().ColumnOrder); n != 2 {
		t.Errorf("columns = %d, want 2", n)
	}
}

func TestAppModel_SwitchProjectResetsBoard(t *testing.T) {
	m, _ := newTestApp(t)
	m.board.col = 1

	updated, _ := m.Update(runes("p"))
	app := updated.(AppModel)
	if app.activeView != viewProjects {
		t.Fatalf("activeView = %d, want %d (viewProjects)", app.activeView, viewProjects)
	}

	updated, cmd := app.Update(projectSelectedMsg{project: board.Project{ID: "p2", Name: "Mobile"}})
	app = updated.(AppModel)
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	if app.board.col != 0 {
		t.Errorf("col = %d, want 0 after switch", app.board.col)
	}
	if len(app.engine.Model().ColumnOrder) != 0 {
		t.Error("expected the old board to be cleared on switch")
	}
}

func TestAppModel_ProjectsCancelReturns(t *testing.T) {
	m, _ := newTestApp(t)
	m.activeView = viewProjects

	updated, _ := m.Update(projectsCancelMsg{})
	app := updated.(AppModel)

	if app.activeView != viewBoard {
		t.Errorf("activeView = %d, want %d (viewBoard)", app.activeView, viewBoard)
	}
}

func TestAppModel_KeyN_OpensNewColumn(t *testing.T) {
	m, _ := newTestApp(t)

	updated, _ := m.Update(runes("n"))
	app := updated.(AppModel)

	if app.activeView != viewNewColumn {
		t.Errorf("activeView = %d, want %d (viewNewColumn)", app.activeView, viewNewColumn)
	}
}

func TestAppModel_CreateColumnFlow(t *testing.T) {
	m, api := newTestApp(t)

	updated, _ := m.Update(runes("n"))
	updated, _ = updated.Update(runes("Review"))
	updated, cmd := updated.Update(keyEnter)
	if cmd == nil {
		t.Fatal("expected a create command")
	}

	created, ok := cmd().(columnCreatedMsg)
	if !ok {
		t.Fatal("expected a columnCreatedMsg")
	}
	if created.err != nil {
		t.Fatalf("create failed: %v", created.err)
	}
	if len(api.created) != 1 || api.created[0] != "Review" {
		t.Errorf("created = %v, want [Review]", api.created)
	}

	updated, _ = updated.Update(created)
	app := updated.(AppModel)
	if app.activeView != viewBoard {
		t.Errorf("activeView = %d, want %d (viewBoard)", app.activeView, viewBoard)
	}
	if app.board.col != 2 {
		t.Errorf("col = %d, want 2 (new column focused)", app.board.col)
	}
	order := app.engine.Model().ColumnOrder
	if len(order) != 3 || order[2] != "col-Review" {
		t.Errorf("column order = %v", order)
	}
	last := app.board.notifications[len(app.board.notifications)-1]
	if last.text != "Column Review created" {
		t.Errorf("notification = %q", last.text)
	}
}

func TestAppModel_CreateColumnFailureStaysInForm(t *testing.T) {
	m, api := newTestApp(t)
	api.createErr = errBackend

	updated, _ := m.Update(runes("n"))
	updated, _ = updated.Update(runes("Review"))
	updated, cmd := updated.Update(keyEnter)
	updated, _ = updated.Update(cmd())
	app := updated.(AppModel)

	if app.activeView != viewNewColumn {
		t.Errorf("activeView = %d, want %d (viewNewColumn)", app.activeView, viewNewColumn)
	}
	if !strings.HasPrefix(app.newColumn.err, "Failed to create column:") {
		t.Errorf("form error = %q", app.newColumn.err)
	}
	if len(app.board.notifications) != 1 {
		t.Errorf("expected a board notification, got %d", len(app.board.notifications))
	}
	if len(app.engine.Model().ColumnOrder) != 2 {
		t.Error("failed create changed the board")
	}
}

func TestAppModel_DetailOpensAndCloses(t *testing.T) {
	m, _ := newTestApp(t)

	updated, cmd := m.Update(keyEnter)
	updated, _ = updated.Update(cmd())
	app := updated.(AppModel)
	if app.activeView != viewDetail {
		t.Fatalf("activeView = %d, want %d (viewDetail)", app.activeView, viewDetail)
	}
	view := app.View()
	if !strings.Contains(view, "Write copy") || !strings.Contains(view, "ada@example.com") {
		t.Errorf("detail view missing task fields:\n%s", view)
	}

	updated, cmd = app.Update(runes("q"))
	updated, _ = updated.Update(cmd())
	app = updated.(AppModel)
	if app.activeView != viewBoard {
		t.Errorf("activeView = %d, want %d (viewBoard)", app.activeView, viewBoard)
	}
}

func TestAppModel_DetailForVanishedTask(t *testing.T) {
	m, _ := newTestApp(t)

	updated, _ := m.Update(openDetailMsg{taskID: "gone"})
	app := updated.(AppModel)
	if app.activeView != viewBoard {
		t.Errorf("activeView = %d, want %d (viewBoard)", app.activeView, viewBoard)
	}
	if len(app.board.notifications) != 1 {
		t.Error("expected a notification for a missing task")
	}
}

func TestAppModel_ForwardsMoveResultsFromOtherViews(t *testing.T) {
	m, _ := newTestApp(t)
	m.activeView = viewNewColumn
	m.board.pending = 1

	updated, _ := m.Update(moveResultMsg{taskID: "t1", err: errBackend})
	app := updated.(AppModel)

	if app.board.pending != 0 {
		t.Errorf("pending = %d, want 0", app.board.pending)
	}
	if len(app.board.notifications) != 1 {
		t.Error("expected the board to record the failed move")
	}
}
