package board

import (
	"errors"
	"fmt"
)

var ErrGestureState = errors.New("illegal gesture transition")

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseDropped
	PhaseReconciling
	PhaseCommitted
	PhaseRolledBack
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseDropped:
		return "dropped"
	case PhaseReconciling:
		return "reconciling"
	case PhaseCommitted:
		return "committed"
	case PhaseRolledBack:
		return "rolled back"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Gesture tracks one drag from pick-up to its final resolution.
// A zero Gesture is idle.
type Gesture struct {
	phase  Phase
	taskID string
	source Location
}

func (g *Gesture) Phase() Phase { return g.phase }
func (g *Gesture) TaskID() string { return g.taskID }
func (g *Gesture) Source() Location { return g.source }
func (g *Gesture) Active() bool { return g.phase == PhaseDragging }

func (g *Gesture) transition(from, to Phase) error {
	if g.phase != from {
		return fmt.Errorf("%w: %s -> %s from %s", ErrGestureState, from, to, g.phase)
	}
	g.phase = to
	return nil
}

// Start picks up taskID at src.
func (g *Gesture) Start(taskID string, src Location) error {
	if err := g.transition(PhaseIdle, PhaseDragging); err != nil {
		return err
	}
	g.taskID = taskID
	g.source = src
	return nil
}

// Cancel abandons an in-progress drag without touching the board.
func (g *Gesture) Cancel() error {
	if err := g.transition(PhaseDragging, PhaseIdle); err != nil {
		return err
	}
	g.taskID = ""
	g.source = Location{}
	return nil
}

// Drop ends the drag. A nil dst is a cancelled drop and returns the
// gesture to idle.
func (g *Gesture) Drop(dst *Location) (DragResult, error) {
	if g.phase != PhaseDragging {
		return DragResult{}, fmt.Errorf("%w: drop from %s", ErrGestureState, g.phase)
	}
	res := DragResult{TaskID: g.taskID, Source: g.source}
	if dst == nil {
		return res, g.Cancel()
	}
	d := *dst
	res.Destination = &d
	g.phase = PhaseDropped
	return res, nil
}

// Settle records how a dropped gesture was applied. Only cross-column
// moves wait on the network; everything else is finished immediately.
func (g *Gesture) Settle(kind DragKind) error {
	if kind == DragMoved {
		return g.transition(PhaseDropped, PhaseReconciling)
	}
	return g.transition(PhaseDropped, PhaseIdle)
}

// Resolve finishes reconciliation with the outcome of the remote write.
func (g *Gesture) Resolve(writeErr error) error {
	if writeErr != nil {
		return g.transition(PhaseReconciling, PhaseRolledBack)
	}
	return g.transition(PhaseReconciling, PhaseCommitted)
}

// Finish returns a resolved gesture to idle.
func (g *Gesture) Finish() error {
	switch g.phase {
	case PhaseCommitted, PhaseRolledBack:
		g.phase = PhaseIdle
		return nil
	}
	return fmt.Errorf("%w: finish from %s", ErrGestureState, g.phase)
}
