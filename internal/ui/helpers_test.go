package ui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/taskboard/internal/board"
	"github.com/simonbystrom/taskboard/internal/config"
	"github.com/simonbystrom/taskboard/internal/engine"
)

// fakeAPI is an in-memory backend for driving the engine from UI tests.
type fakeAPI struct {
	mu sync.Mutex

	projects []board.Project
	columns  []board.ColumnDescriptor
	tasks    []board.Task

	loadErr   error
	moveErr   error
	createErr error

	moves   []board.MoveRequest
	created []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		projects: []board.Project{{ID: "p1", Name: "Website"}, {ID: "p2", Name: "Mobile"}},
		columns: []board.ColumnDescriptor{
			{ID: "A", Name: "Todo"},
			{ID: "B", Name: "Doing"},
		},
		tasks: []board.Task{
			{ID: "t1", Name: "Write copy", Priority: board.PriorityHigh, GroupID: "A", GroupName: "Todo",
				Assignments: []board.Assignment{{MemberID: "m1", MemberName: "Ada", Email: "ada@example.com"}}},
			{ID: "t2", Name: "Pick fonts", Priority: board.PriorityLow, GroupID: "A", GroupName: "Todo"},
			{ID: "t3", Name: "Build header", Priority: board.PriorityMedium, GroupID: "B", GroupName: "Doing"},
		},
	}
}

func (f *fakeAPI) Projects(ctx context.Context) ([]board.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]board.Project(nil), f.projects...), nil
}

func (f *fakeAPI) ListColumns(ctx context.Context, projectID string) ([]board.ColumnDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]board.ColumnDescriptor(nil), f.columns...), nil
}

func (f *fakeAPI) ListTasks(ctx context.Context, projectID string) ([]board.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]board.Task(nil), f.tasks...), nil
}

func (f *fakeAPI) MoveTask(ctx context.Context, req board.MoveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, req)
	return f.moveErr
}

func (f *fakeAPI) CreateColumn(ctx context.Context, projectID, name string) (board.ColumnDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name)
	if f.createErr != nil {
		return board.ColumnDescriptor{}, f.createErr
	}
	col := board.ColumnDescriptor{ID: "col-" + name, Name: name}
	f.columns = append(f.columns, col)
	return col, nil
}

func (f *fakeAPI) moveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.moves)
}

var errBackend = errors.New("backend unavailable")

func newLoadedEngine(t *testing.T, api *fakeAPI) *engine.Engine {
	t.Helper()
	eng := engine.New(api, board.NewStore())
	eng.SelectProject("p1")
	if err := eng.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return eng
}

func newTestBoard(t *testing.T) (boardModel, *fakeAPI, *engine.Engine) {
	t.Helper()
	api := newFakeAPI()
	eng := newLoadedEngine(t, api)
	cfg := config.Default()
	b := newBoard(NewStyles(cfg.Colors), cfg.Layout, eng)
	b.width = 160
	b.height = 40
	return b, api, eng
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

// drain runs cmd and any batched commands it yields, returning every
// message produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
