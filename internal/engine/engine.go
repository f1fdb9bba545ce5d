package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simonbystrom/taskboard/internal/board"
)

var (
	ErrBlankColumnName = errors.New("column name must not be blank")
	ErrNoProject       = errors.New("no project selected")
)

// API is the slice of the backend the engine talks to.
type API interface {
	Projects(ctx context.Context) ([]board.Project, error)
	ListColumns(ctx context.Context, projectID string) ([]board.ColumnDescriptor, error)
	ListTasks(ctx context.Context, projectID string) ([]board.Task, error)
	MoveTask(ctx context.Context, req board.MoveRequest) error
	CreateColumn(ctx context.Context, projectID, name string) (board.ColumnDescriptor, error)
}

// PendingMove is an optimistically applied cross-column move waiting for
// its remote write.
type PendingMove struct {
	Request  board.MoveRequest
	Snapshot board.Snapshot

	gesture board.Gesture
	gen     uint64
}

// Phase reports where the move's gesture is in its lifecycle. After Commit
// it is committed or rolled back until Finish is called.
func (p *PendingMove) Phase() board.Phase {
	return p.gesture.Phase()
}

// Finish returns a committed or rolled back move's gesture to idle.
func (p *PendingMove) Finish() error {
	return p.gesture.Finish()
}

type Engine struct {
	api   API
	store *board.Store

	readTimeout  time.Duration
	writeTimeout time.Duration

	mu      sync.Mutex
	project string
	// gen changes whenever the model is rebuilt from scratch, so a write
	// resolving afterwards does not patch a board it was not applied to.
	gen uint64

	inflight atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithWriteTimeout bounds how long a move or create write may stay
// unresolved. A move that times out is rolled back.
func WithWriteTimeout(d time.Duration) Option {
	return func(e *Engine) { e.writeTimeout = d }
}

// WithReadTimeout bounds board and project fetches.
func WithReadTimeout(d time.Duration) Option {
	return func(e *Engine) { e.readTimeout = d }
}

func New(api API, store *board.Store, opts ...Option) *Engine {
	e := &Engine{
		api:          api,
		store:        store,
		readTimeout:  15 * time.Second,
		writeTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Project() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project
}

func (e *Engine) current() (string, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project, e.gen
}

// SelectProject switches the board to another project. The model is
// emptied until the next Load.
func (e *Engine) SelectProject(id string) {
	e.mu.Lock()
	e.project = id
	e.gen++
	e.mu.Unlock()
	e.store.Reset()
	slog.Info("project selected", "project", id)
}

// Model returns a render snapshot of the board.
func (e *Engine) Model() board.Model {
	return e.store.Model()
}

// Task looks up a task for the detail view.
func (e *Engine) Task(id string) (board.Task, bool) {
	return e.store.Task(id)
}

// InFlight is the number of move writes not yet resolved.
func (e *Engine) InFlight() int {
	return int(e.inflight.Load())
}

func (e *Engine) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func (e *Engine) Projects(ctx context.Context) ([]board.Project, error) {
	ctx, cancel := e.withTimeout(ctx, e.readTimeout)
	defer cancel()
	projects, err := e.api.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Load fetches columns and tasks concurrently and replaces the model with
// their merge. If either fetch fails the model is left untouched.
func (e *Engine) Load(ctx context.Context) error {
	project, gen := e.current()
	if project == "" {
		return ErrNoProject
	}

	ctx, cancel := e.withTimeout(ctx, e.readTimeout)
	defer cancel()

	var (
		columns []board.ColumnDescriptor
		tasks   []board.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		columns, err = e.api.ListColumns(gctx, project)
		if err != nil {
			return fmt.Errorf("list columns: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = e.api.ListTasks(gctx, project)
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("board load failed", "project", project, "error", err)
		return fmt.Errorf("load board %s: %w", project, err)
	}

	m := board.Build(columns, tasks)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.project != project || e.gen != gen {
		slog.Debug("discarding stale board load", "project", project)
		return nil
	}
	e.gen++
	e.store.Replace(m)
	slog.Info("board loaded", "project", project, "columns", len(m.ColumnOrder), "tasks", len(m.Tasks))
	return nil
}

// Drop ends g at dst and applies the result to the board immediately.
// It returns a PendingMove only when a remote write is required; cancelled
// drops, no-op drops and same-column reorders return nil.
func (e *Engine) Drop(g board.Gesture, dst *board.Location) (*PendingMove, error) {
	res, err := g.Drop(dst)
	if err != nil {
		return nil, err
	}
	if res.Destination == nil {
		return nil, nil
	}

	_, gen := e.current()
	var outcome board.DragOutcome
	err = e.store.Update(func(m board.Model) (board.Model, error) {
		var err error
		outcome, err = board.ApplyDrag(m, res)
		if err != nil {
			return m, err
		}
		return outcome.Model, nil
	})
	if err != nil {
		return nil, fmt.Errorf("drop task %s: %w", res.TaskID, err)
	}
	if err := g.Settle(outcome.Kind); err != nil {
		return nil, err
	}

	slog.Debug("drop applied", "task", res.TaskID, "kind", outcome.Kind.String())
	if outcome.Write == nil {
		return nil, nil
	}
	return &PendingMove{
		Request:  *outcome.Write,
		Snapshot: outcome.Snapshot,
		gesture:  g,
		gen:      gen,
	}, nil
}

// Commit issues the remote write for p. On failure (including timeout)
// the moved task is put back in its source column and the cause is
// returned. Moves of other tasks made since the drop are kept.
func (e *Engine) Commit(ctx context.Context, p *PendingMove) error {
	if p == nil {
		return nil
	}
	e.inflight.Add(1)
	defer e.inflight.Add(-1)

	ctx, cancel := e.withTimeout(ctx, e.writeTimeout)
	defer cancel()

	slog.Info("move issued", "task", p.Request.TaskID, "to", p.Request.DestinationColumnID)
	writeErr := e.api.MoveTask(ctx, p.Request)
	_ = p.gesture.Resolve(writeErr)

	_, gen := e.current()
	stale := gen != p.gen

	if writeErr != nil {
		if !stale {
			_ = e.store.Update(func(m board.Model) (board.Model, error) {
				return board.Rollback(m, p.Snapshot), nil
			})
		}
		slog.Warn("move rolled back", "task", p.Request.TaskID, "to", p.Request.DestinationColumnID, "error", writeErr)
		return fmt.Errorf("move task %s: %w", p.Request.TaskID, writeErr)
	}

	if !stale {
		_ = e.store.Update(func(m board.Model) (board.Model, error) {
			return board.ConfirmMove(m, p.Request), nil
		})
	}
	slog.Info("move committed", "task", p.Request.TaskID, "to", p.Request.DestinationColumnID)
	return nil
}

// DragEnd handles a complete drag result in one call: optimistic apply
// followed by the remote write when one is needed.
func (e *Engine) DragEnd(ctx context.Context, res board.DragResult) error {
	var g board.Gesture
	if err := g.Start(res.TaskID, res.Source); err != nil {
		return err
	}
	p, err := e.Drop(g, res.Destination)
	if err != nil || p == nil {
		return err
	}
	err = e.Commit(ctx, p)
	_ = p.Finish()
	return err
}

// CreateColumn creates a task group and merges the server's column list
// into the board. Nothing is inserted before the server assigns an id.
func (e *Engine) CreateColumn(ctx context.Context, name string) (board.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return board.Column{}, ErrBlankColumnName
	}
	project, gen := e.current()
	if project == "" {
		return board.Column{}, ErrNoProject
	}

	wctx, cancel := e.withTimeout(ctx, e.writeTimeout)
	created, err := e.api.CreateColumn(wctx, project, name)
	cancel()
	if err != nil {
		slog.Warn("create column failed", "project", project, "name", name, "error", err)
		return board.Column{}, fmt.Errorf("create column %q: %w", name, err)
	}

	rctx, cancel := e.withTimeout(ctx, e.readTimeout)
	columns, err := e.api.ListColumns(rctx, project)
	cancel()
	if err != nil {
		slog.Warn("column refresh after create failed, merging created column only", "project", project, "error", err)
		columns = nil
	}
	if !containsColumn(columns, created.ID) {
		columns = append(columns, created)
	}

	e.mu.Lock()
	stale := e.project != project || e.gen != gen
	e.mu.Unlock()
	if !stale {
		_ = e.store.Update(func(m board.Model) (board.Model, error) {
			return board.MergeColumns(m, columns), nil
		})
	}

	slog.Info("column created", "project", project, "id", created.ID, "name", created.Name)
	if col, ok := e.store.Column(created.ID); ok {
		return col, nil
	}
	return board.Column{ID: created.ID, Title: created.Name, TaskIDs: []string{}}, nil
}

func containsColumn(cols []board.ColumnDescriptor, id string) bool {
	for _, c := range cols {
		if c.ID == id {
			return true
		}
	}
	return false
}
