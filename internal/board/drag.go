package board

import "fmt"

// Location is a slot on the board: a column and a position within it.
type Location struct {
	ColumnID string
	Index    int
}

// DragResult describes a finished drag gesture. A nil Destination means
// the gesture was cancelled.
type DragResult struct {
	TaskID      string
	Source      Location
	Destination *Location
}

// MoveRequest is the single remote write issued for a cross-column move.
type MoveRequest struct {
	TaskID              string `json:"taskId"`
	DestinationColumnID string `json:"destinationColumnId"`
}

// Snapshot holds the moved task and the source and destination columns as
// they were before a drop was applied.
type Snapshot struct {
	TaskID      string
	Source      Column
	Destination Column
}

type DragKind int

const (
	DragCancelled DragKind = iota
	DragNoOp
	DragReordered
	DragMoved
)

func (k DragKind) String() string {
	switch k {
	case DragCancelled:
		return "cancelled"
	case DragNoOp:
		return "no-op"
	case DragReordered:
		return "reordered"
	case DragMoved:
		return "moved"
	}
	return fmt.Sprintf("DragKind(%d)", int(k))
}

// DragOutcome is the result of applying a drop to a model. Write is set
// only for DragMoved.
type DragOutcome struct {
	Kind     DragKind
	Model    Model
	Snapshot Snapshot
	Write    *MoveRequest
}

// ApplyDrag computes the model after a drop. It never mutates m.
//
// Reordering inside one column is purely local. Moving across columns
// updates both columns' membership and yields a MoveRequest; the task's
// own GroupID is left untouched until the write is confirmed.
func ApplyDrag(m Model, r DragResult) (DragOutcome, error) {
	if r.Destination == nil {
		return DragOutcome{Kind: DragCancelled, Model: m}, nil
	}
	dst := *r.Destination

	start, ok := m.Columns[r.Source.ColumnID]
	if !ok {
		return DragOutcome{}, fmt.Errorf("source %s: %w", r.Source.ColumnID, ErrColumnNotFound)
	}
	finish, ok := m.Columns[dst.ColumnID]
	if !ok {
		return DragOutcome{}, fmt.Errorf("destination %s: %w", dst.ColumnID, ErrColumnNotFound)
	}
	if _, ok := m.Tasks[r.TaskID]; !ok {
		return DragOutcome{}, fmt.Errorf("task %s: %w", r.TaskID, ErrTaskNotFound)
	}

	from := r.Source.Index
	if from < 0 || from >= len(start.TaskIDs) || start.TaskIDs[from] != r.TaskID {
		from = start.indexOf(r.TaskID)
		if from < 0 {
			return DragOutcome{}, fmt.Errorf("task %s in column %s: %w", r.TaskID, start.ID, ErrTaskNotFound)
		}
	}

	snap := Snapshot{TaskID: r.TaskID, Source: start.clone(), Destination: finish.clone()}

	if start.ID == finish.ID {
		if dst.Index < 0 || dst.Index >= len(start.TaskIDs) {
			return DragOutcome{}, fmt.Errorf("reorder to %d in %s: %w", dst.Index, start.ID, ErrInvalidIndex)
		}
		if dst.Index == from {
			return DragOutcome{Kind: DragNoOp, Model: m, Snapshot: snap}, nil
		}
		out := m.Clone()
		c := out.Columns[start.ID]
		c.TaskIDs = insertAt(removeAt(c.TaskIDs, from), dst.Index, r.TaskID)
		out.Columns[start.ID] = c
		return DragOutcome{Kind: DragReordered, Model: out, Snapshot: snap}, nil
	}

	if dst.Index < 0 || dst.Index > len(finish.TaskIDs) {
		return DragOutcome{}, fmt.Errorf("insert at %d in %s: %w", dst.Index, finish.ID, ErrInvalidIndex)
	}
	out := m.Clone()
	s := out.Columns[start.ID]
	s.TaskIDs = removeAt(s.TaskIDs, from)
	out.Columns[start.ID] = s
	f := out.Columns[finish.ID]
	f.TaskIDs = insertAt(f.TaskIDs, dst.Index, r.TaskID)
	out.Columns[finish.ID] = f

	return DragOutcome{
		Kind:     DragMoved,
		Model:    out,
		Snapshot: snap,
		Write:    &MoveRequest{TaskID: r.TaskID, DestinationColumnID: finish.ID},
	}, nil
}

// Rollback undoes the move captured in s and nothing else. The task is
// taken out of the destination column and put back at its snapshot index in
// the source column, unless some column already lists it. Other tasks moved
// since the drop stay where they are. Columns that no longer exist in m are
// skipped.
func Rollback(m Model, s Snapshot) Model {
	out := m.Clone()
	if s.Destination.ID != s.Source.ID {
		if dst, ok := out.Columns[s.Destination.ID]; ok {
			if i := dst.indexOf(s.TaskID); i >= 0 {
				dst.TaskIDs = removeAt(dst.TaskIDs, i)
				out.Columns[dst.ID] = dst
			}
		}
	}

	src, ok := out.Columns[s.Source.ID]
	if !ok {
		return out
	}
	if _, ok := out.Tasks[s.TaskID]; !ok {
		return out
	}
	if _, listed := out.ColumnOf(s.TaskID); listed {
		return out
	}
	i := s.Source.indexOf(s.TaskID)
	if i < 0 || i > len(src.TaskIDs) {
		i = len(src.TaskIDs)
	}
	src.TaskIDs = insertAt(src.TaskIDs, i, s.TaskID)
	out.Columns[src.ID] = src
	return out
}

// ConfirmMove records a committed move on the task itself.
func ConfirmMove(m Model, req MoveRequest) Model {
	t, ok := m.Tasks[req.TaskID]
	if !ok {
		return m
	}
	out := m.Clone()
	t = out.Tasks[req.TaskID]
	t.GroupID = req.DestinationColumnID
	if c, ok := out.Columns[req.DestinationColumnID]; ok {
		t.GroupName = c.Title
	}
	out.Tasks[req.TaskID] = t
	return out
}

func removeAt(ids []string, i int) []string {
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

func insertAt(ids []string, i int, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	return append(out, ids[i:]...)
}
