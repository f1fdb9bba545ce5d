package board

import "sync"

// Store owns the current Model for one open board. Readers always get a
// deep copy so rendering never races with a write resolving in the
// background.
type Store struct {
	mu    sync.RWMutex
	model Model
	rev   uint64
}

func NewStore() *Store {
	return &Store{model: NewModel()}
}

// Model returns a copy of the current model.
func (s *Store) Model() Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Clone()
}

// Revision increases on every change.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

func (s *Store) Replace(m Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m.Clone()
	s.rev++
}

func (s *Store) Reset() {
	s.Replace(NewModel())
}

// Update applies fn to the current model atomically. If fn returns an
// error the model is left as it was.
func (s *Store) Update(fn func(Model) (Model, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.model)
	if err != nil {
		return err
	}
	s.model = next
	s.rev++
	return nil
}

func (s *Store) Task(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.model.Tasks[id]
	if !ok {
		return Task{}, false
	}
	return t.clone(), true
}

func (s *Store) Column(id string) (Column, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.model.Columns[id]
	if !ok {
		return Column{}, false
	}
	return c.clone(), true
}
