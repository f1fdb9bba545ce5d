package board

// Build merges independently fetched columns and tasks into a Model.
//
// Columns keep their fetch order. A task that references a group not in
// columns gets a column synthesized from its denormalized group name,
// appended to the order. Tasks without a group id are dropped, and
// duplicate ids keep their first occurrence.
func Build(columns []ColumnDescriptor, tasks []Task) Model {
	m := NewModel()
	for _, d := range columns {
		if _, ok := m.Columns[d.ID]; ok {
			continue
		}
		m.Columns[d.ID] = Column{ID: d.ID, Title: d.Name, TaskIDs: []string{}}
		m.ColumnOrder = append(m.ColumnOrder, d.ID)
	}

	for _, t := range tasks {
		if t.GroupID == "" {
			continue
		}
		if _, dup := m.Tasks[t.ID]; dup {
			continue
		}
		c, ok := m.Columns[t.GroupID]
		if !ok {
			c = Column{ID: t.GroupID, Title: t.GroupName, TaskIDs: []string{}}
			m.ColumnOrder = append(m.ColumnOrder, t.GroupID)
		}
		c.TaskIDs = append(c.TaskIDs, t.ID)
		m.Columns[t.GroupID] = c
		m.Tasks[t.ID] = t.clone()
	}
	return m
}

// MergeColumns folds a fresh column listing into m. Known columns keep
// their tasks and position and take the new title; unknown ones are
// appended empty. Columns missing from the listing are left alone since
// column deletion is not handled locally.
func MergeColumns(m Model, columns []ColumnDescriptor) Model {
	out := m.Clone()
	for _, d := range columns {
		if c, ok := out.Columns[d.ID]; ok {
			c.Title = d.Name
			out.Columns[d.ID] = c
			continue
		}
		out.Columns[d.ID] = Column{ID: d.ID, Title: d.Name, TaskIDs: []string{}}
		out.ColumnOrder = append(out.ColumnOrder, d.ID)
	}
	return out
}
