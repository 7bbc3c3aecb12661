package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Keith9922/Ketcher-demo/engine/core"
)

// Store is an in-memory task repository. Reads return deep copies, writes go
// through Update which serializes mutations per task id while leaving
// different tasks free to proceed concurrently.
type Store struct {
	mu    sync.RWMutex
	tasks map[core.ID]*Task
	order []core.ID
	locks map[core.ID]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		tasks: make(map[core.ID]*Task),
		locks: make(map[core.ID]*sync.Mutex),
	}
}

// Put inserts a new task. Inserting an existing id is a programming error.
func (s *Store) Put(ctx context.Context, t *Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t == nil || t.ID.IsZero() {
		return fmt.Errorf("cannot store a task without an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[t.ID]; exists {
		return fmt.Errorf("task %s already exists", t.ID)
	}
	s.tasks[t.ID] = t.Clone()
	s.order = append(s.order, t.ID)
	s.locks[t.ID] = &sync.Mutex{}
	return nil
}

// Get returns a deep copy of the task.
func (s *Store) Get(ctx context.Context, id core.ID) (*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return t.Clone(), nil
}

// List returns deep copies of all tasks in insertion order.
func (s *Store) List(ctx context.Context) ([]*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id].Clone())
	}
	return out, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Update applies fn to a private copy of the task under that task's mutex and
// commits the copy if fn succeeds. fn may block (it runs structure
// normalization) without stalling operations on other tasks; an error from fn
// leaves the stored task untouched.
func (s *Store) Update(ctx context.Context, id core.ID, fn func(t *Task) error) (*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lock, err := s.lockFor(id)
	if err != nil {
		return nil, err
	}
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	current, ok := s.tasks[id]
	if !ok {
		s.mu.RUnlock()
		return nil, &NotFoundError{ID: id}
	}
	working := current.Clone()
	s.mu.RUnlock()

	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	s.tasks[id] = working
	s.mu.Unlock()
	return working.Clone(), nil
}

func (s *Store) lockFor(id core.ID) (*sync.Mutex, error) {
	s.mu.RLock()
	lock, ok := s.locks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return lock, nil
}
