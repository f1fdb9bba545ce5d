package board

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Assignment is an assignee stub carried on a task.
type Assignment struct {
	MemberID   string `json:"memberId"`
	MemberName string `json:"memberName"`
	Email      string `json:"email,omitempty"`
}

// Task is a unit of work as returned by the backend. GroupName is a
// denormalized copy of the owning column's title.
type Task struct {
	ID          string       `json:"taskId"`
	Name        string       `json:"taskName"`
	Priority    Priority     `json:"priority"`
	StartDate   Date         `json:"startDate"`
	EndDate     Date         `json:"endDate"`
	Status      Status       `json:"status"`
	GroupID     string       `json:"taskGroupId"`
	GroupName   string       `json:"taskGroupName"`
	Assignments []Assignment `json:"taskAssignments"`
}

func (t Task) clone() Task {
	if t.Assignments != nil {
		t.Assignments = append([]Assignment(nil), t.Assignments...)
	}
	return t
}

// Initials returns up to two assignee initials for compact card rendering.
func (t Task) Initials() string {
	var out []rune
	for _, a := range t.Assignments {
		for _, r := range a.MemberName {
			out = append(out, r)
			break
		}
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
