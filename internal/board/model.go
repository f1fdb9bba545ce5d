package board

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrInvalidIndex   = errors.New("index out of range")
	ErrInconsistent   = errors.New("board model inconsistent")
)

// Project is a board the signed-in user can open.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ColumnDescriptor is a task group as listed by the backend.
type ColumnDescriptor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Column is one board lane. TaskIDs is ordered top to bottom.
type Column struct {
	ID      string
	Title   string
	TaskIDs []string
}

func (c Column) clone() Column {
	c.TaskIDs = append([]string{}, c.TaskIDs...)
	return c
}

func (c Column) indexOf(taskID string) int {
	for i, id := range c.TaskIDs {
		if id == taskID {
			return i
		}
	}
	return -1
}

// Model is the normalized board: tasks and columns keyed by id plus the
// display order of columns.
type Model struct {
	Tasks       map[string]Task
	Columns     map[string]Column
	ColumnOrder []string
}

func NewModel() Model {
	return Model{
		Tasks:       make(map[string]Task),
		Columns:     make(map[string]Column),
		ColumnOrder: []string{},
	}
}

// Clone returns a deep copy; mutating the copy never touches m.
func (m Model) Clone() Model {
	out := Model{
		Tasks:       make(map[string]Task, len(m.Tasks)),
		Columns:     make(map[string]Column, len(m.Columns)),
		ColumnOrder: append([]string{}, m.ColumnOrder...),
	}
	for id, t := range m.Tasks {
		out.Tasks[id] = t.clone()
	}
	for id, c := range m.Columns {
		out.Columns[id] = c.clone()
	}
	return out
}

// OrderedColumns returns the columns in display order.
func (m Model) OrderedColumns() []Column {
	cols := make([]Column, 0, len(m.ColumnOrder))
	for _, id := range m.ColumnOrder {
		if c, ok := m.Columns[id]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// ColumnOf returns the column currently listing taskID.
func (m Model) ColumnOf(taskID string) (Column, bool) {
	for _, id := range m.ColumnOrder {
		c := m.Columns[id]
		if c.indexOf(taskID) >= 0 {
			return c, true
		}
	}
	return Column{}, false
}

// Validate checks referential integrity between tasks and columns and
// that ColumnOrder is a permutation of the column keys.
func (m Model) Validate() error {
	if len(m.ColumnOrder) != len(m.Columns) {
		return fmt.Errorf("%w: %d ordered columns, %d columns", ErrInconsistent, len(m.ColumnOrder), len(m.Columns))
	}
	seenCol := make(map[string]bool, len(m.ColumnOrder))
	for _, id := range m.ColumnOrder {
		if seenCol[id] {
			return fmt.Errorf("%w: column %s ordered twice", ErrInconsistent, id)
		}
		if _, ok := m.Columns[id]; !ok {
			return fmt.Errorf("%w: ordered column %s missing", ErrInconsistent, id)
		}
		seenCol[id] = true
	}

	owner := make(map[string]string, len(m.Tasks))
	for _, colID := range m.ColumnOrder {
		c := m.Columns[colID]
		if c.ID != colID {
			return fmt.Errorf("%w: column keyed %s has id %s", ErrInconsistent, colID, c.ID)
		}
		for _, taskID := range c.TaskIDs {
			if _, ok := m.Tasks[taskID]; !ok {
				return fmt.Errorf("%w: column %s lists unknown task %s", ErrInconsistent, colID, taskID)
			}
			if prev, dup := owner[taskID]; dup {
				return fmt.Errorf("%w: task %s listed by %s and %s", ErrInconsistent, taskID, prev, colID)
			}
			owner[taskID] = colID
		}
	}

	for id, t := range m.Tasks {
		colID, ok := owner[id]
		if !ok {
			return fmt.Errorf("%w: task %s not in any column", ErrInconsistent, id)
		}
		if t.GroupID != colID {
			return fmt.Errorf("%w: task %s has group %s but is listed by %s", ErrInconsistent, id, t.GroupID, colID)
		}
	}
	return nil
}
