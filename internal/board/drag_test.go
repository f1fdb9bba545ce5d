package board

import (
	"errors"
	"reflect"
	"testing"
)

// scenarioModel is A:[t1 t2], B:[t3], C:[].
func scenarioModel() Model {
	return Build(
		[]ColumnDescriptor{{ID: "A", Name: "Todo"}, {ID: "B", Name: "Doing"}, {ID: "C", Name: "Done"}},
		[]Task{task("t1", "A"), task("t2", "A"), task("t3", "B")},
	)
}

func drop(taskID, from string, fromIdx int, to string, toIdx int) DragResult {
	return DragResult{
		TaskID:      taskID,
		Source:      Location{ColumnID: from, Index: fromIdx},
		Destination: &Location{ColumnID: to, Index: toIdx},
	}
}

func TestApplyDrag_CrossColumnMove(t *testing.T) {
	m := scenarioModel()

	out, err := ApplyDrag(m, drop("t1", "A", 0, "B", 0))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}
	if out.Kind != DragMoved {
		t.Errorf("Kind = %s, want moved", out.Kind)
	}
	if got := out.Model.Columns["A"].TaskIDs; !reflect.DeepEqual(got, []string{"t2"}) {
		t.Errorf("A.TaskIDs = %v, want [t2]", got)
	}
	if got := out.Model.Columns["B"].TaskIDs; !reflect.DeepEqual(got, []string{"t1", "t3"}) {
		t.Errorf("B.TaskIDs = %v, want [t1 t3]", got)
	}
	want := &MoveRequest{TaskID: "t1", DestinationColumnID: "B"}
	if !reflect.DeepEqual(out.Write, want) {
		t.Errorf("Write = %+v, want %+v", out.Write, want)
	}
	if out.Model.Tasks["t1"].GroupID != "A" {
		t.Error("task GroupID changed before the write was confirmed")
	}
	if !reflect.DeepEqual(m, scenarioModel()) {
		t.Error("ApplyDrag mutated its input model")
	}
}

func TestApplyDrag_IntoEmptyColumn(t *testing.T) {
	out, err := ApplyDrag(scenarioModel(), drop("t2", "A", 1, "C", 0))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}
	if got := out.Model.Columns["C"].TaskIDs; !reflect.DeepEqual(got, []string{"t2"}) {
		t.Errorf("C.TaskIDs = %v, want [t2]", got)
	}
}

func TestApplyDrag_AppendAtEnd(t *testing.T) {
	out, err := ApplyDrag(scenarioModel(), drop("t1", "A", 0, "B", 1))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}
	if got := out.Model.Columns["B"].TaskIDs; !reflect.DeepEqual(got, []string{"t3", "t1"}) {
		t.Errorf("B.TaskIDs = %v, want [t3 t1]", got)
	}
}

func TestApplyDrag_SameColumnReorderHasNoWrite(t *testing.T) {
	out, err := ApplyDrag(scenarioModel(), drop("t1", "A", 0, "A", 1))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}
	if out.Kind != DragReordered {
		t.Errorf("Kind = %s, want reordered", out.Kind)
	}
	if out.Write != nil {
		t.Errorf("Write = %+v, want nil", out.Write)
	}
	if got := out.Model.Columns["A"].TaskIDs; !reflect.DeepEqual(got, []string{"t2", "t1"}) {
		t.Errorf("A.TaskIDs = %v, want [t2 t1]", got)
	}
	if err := out.Model.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestApplyDrag_NoOpDrop(t *testing.T) {
	m := scenarioModel()
	out, err := ApplyDrag(m, drop("t2", "A", 1, "A", 1))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}
	if out.Kind != DragNoOp {
		t.Errorf("Kind = %s, want no-op", out.Kind)
	}
	if out.Write != nil {
		t.Error("no-op drop produced a write")
	}
	if !reflect.DeepEqual(out.Model, scenarioModel()) {
		t.Error("no-op drop changed the model")
	}
}

func TestApplyDrag_Cancelled(t *testing.T) {
	out, err := ApplyDrag(scenarioModel(), DragResult{TaskID: "t1", Source: Location{ColumnID: "A"}})
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}
	if out.Kind != DragCancelled || out.Write != nil {
		t.Errorf("outcome = %+v, want cancelled without write", out)
	}
	if !reflect.DeepEqual(out.Model, scenarioModel()) {
		t.Error("cancelled drop changed the model")
	}
}

func TestApplyDrag_StaleSourceIndexFindsTask(t *testing.T) {
	out, err := ApplyDrag(scenarioModel(), drop("t2", "A", 0, "B", 0))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}
	if got := out.Model.Columns["A"].TaskIDs; !reflect.DeepEqual(got, []string{"t1"}) {
		t.Errorf("A.TaskIDs = %v, want [t1]", got)
	}
}

func TestApplyDrag_Errors(t *testing.T) {
	tests := []struct {
		name string
		res  DragResult
		want error
	}{
		{"unknown source", drop("t1", "X", 0, "B", 0), ErrColumnNotFound},
		{"unknown destination", drop("t1", "A", 0, "X", 0), ErrColumnNotFound},
		{"unknown task", drop("nope", "A", 0, "B", 0), ErrTaskNotFound},
		{"task not in source", drop("t3", "A", 0, "C", 0), ErrTaskNotFound},
		{"index past end", drop("t1", "A", 0, "B", 5), ErrInvalidIndex},
		{"negative index", drop("t1", "A", 0, "B", -1), ErrInvalidIndex},
		{"reorder past end", drop("t1", "A", 0, "A", 2), ErrInvalidIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyDrag(scenarioModel(), tt.res)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRollback_RestoresSnapshot(t *testing.T) {
	before := scenarioModel()
	out, err := ApplyDrag(before, drop("t1", "A", 0, "B", 0))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}

	restored := Rollback(out.Model, out.Snapshot)

	if !reflect.DeepEqual(restored.Columns["A"], before.Columns["A"]) {
		t.Errorf("A = %+v, want %+v", restored.Columns["A"], before.Columns["A"])
	}
	if !reflect.DeepEqual(restored.Columns["B"], before.Columns["B"]) {
		t.Errorf("B = %+v, want %+v", restored.Columns["B"], before.Columns["B"])
	}
	if !reflect.DeepEqual(restored, before) {
		t.Error("rolled back model differs from the pre-drag model")
	}
}

func TestRollback_SkipsVanishedColumns(t *testing.T) {
	out, _ := ApplyDrag(scenarioModel(), drop("t1", "A", 0, "B", 0))
	m := Build([]ColumnDescriptor{{ID: "A"}}, nil)

	restored := Rollback(m, out.Snapshot)
	if _, ok := restored.Columns["B"]; ok {
		t.Error("rollback resurrected a column that no longer exists")
	}
}

func TestRollback_KeepsOtherMoves(t *testing.T) {
	first, _ := ApplyDrag(scenarioModel(), drop("t1", "A", 0, "B", 0))
	second, err := ApplyDrag(first.Model, drop("t2", "A", 0, "C", 0))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}

	restored := Rollback(second.Model, first.Snapshot)

	want := map[string][]string{"A": {"t1"}, "B": {"t3"}, "C": {"t2"}}
	for col, ids := range want {
		if got := restored.Columns[col].TaskIDs; !reflect.DeepEqual(got, ids) {
			t.Errorf("%s = %v, want %v", col, got, ids)
		}
	}
	if err := restored.Validate(); err != nil {
		t.Errorf("Validate after rollback: %v", err)
	}
}

func TestRollback_KeepsTaskMovedAgain(t *testing.T) {
	first, _ := ApplyDrag(scenarioModel(), drop("t1", "A", 0, "B", 0))
	second, err := ApplyDrag(first.Model, drop("t1", "B", 0, "C", 0))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}

	restored := Rollback(second.Model, first.Snapshot)

	if got := restored.Columns["A"].TaskIDs; !reflect.DeepEqual(got, []string{"t2"}) {
		t.Errorf("A = %v, want [t2]", got)
	}
	if got := restored.Columns["C"].TaskIDs; !reflect.DeepEqual(got, []string{"t1"}) {
		t.Errorf("C = %v, want [t1]", got)
	}
	if err := restored.Validate(); err != nil {
		t.Errorf("Validate after rollback: %v", err)
	}
}

func TestRollback_ClampsIndexInShrunkSource(t *testing.T) {
	first, _ := ApplyDrag(scenarioModel(), drop("t2", "A", 1, "B", 1))
	second, err := ApplyDrag(first.Model, drop("t1", "A", 0, "C", 0))
	if err != nil {
		t.Fatalf("ApplyDrag: %v", err)
	}

	restored := Rollback(second.Model, first.Snapshot)

	if got := restored.Columns["A"].TaskIDs; !reflect.DeepEqual(got, []string{"t2"}) {
		t.Errorf("A = %v, want [t2]", got)
	}
	if got := restored.Columns["B"].TaskIDs; !reflect.DeepEqual(got, []string{"t3"}) {
		t.Errorf("B = %v, want [t3]", got)
	}
	if err := restored.Validate(); err != nil {
		t.Errorf("Validate after rollback: %v", err)
	}
}

func TestConfirmMove(t *testing.T) {
	out, _ := ApplyDrag(scenarioModel(), drop("t1", "A", 0, "B", 0))

	m := ConfirmMove(out.Model, *out.Write)
	if got := m.Tasks["t1"]; got.GroupID != "B" || got.GroupName != "Doing" {
		t.Errorf("t1 group = %q/%q, want B/Doing", got.GroupID, got.GroupName)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after confirm: %v", err)
	}
}
