// Package uc implements the workflow operations exposed by the task router.
// Each operation is a struct built with its inputs and executed once.
package uc

import (
	"context"
	"fmt"

	"github.com/Keith9922/Ketcher-demo/engine/core"
	"github.com/Keith9922/Ketcher-demo/engine/task"
)

// -----------------------------------------------------------------------------
// CreateTasks
// -----------------------------------------------------------------------------

// CreateInput describes one task to create.
type CreateInput struct {
	Title   string
	Source  task.Source
	Context *task.Context
}

// CreateTasks inserts a batch of NEW tasks. Validation is all-or-nothing:
// a bad item fails the batch before anything is stored.
type CreateTasks struct {
	store *task.Store
	items []CreateInput
}

func NewCreateTasks(store *task.Store, items []CreateInput) *CreateTasks {
	return &CreateTasks{
		store: store,
		items: items,
	}
}

func (uc *CreateTasks) Execute(ctx context.Context) ([]*task.Task, error) {
	if len(uc.items) == 0 {
		return nil, fmt.Errorf("at least one task is required")
	}
	created := make([]*task.Task, 0, len(uc.items))
	for _, item := range uc.items {
		t, err := task.New(item.Title, item.Source)
		if err != nil {
			return nil, err
		}
		t.Context = item.Context
		created = append(created, t)
	}
	for _, t := range created {
		if err := uc.store.Put(ctx, t); err != nil {
			return nil, fmt.Errorf("failed to store task: %w", err)
		}
	}
	return created, nil
}

// -----------------------------------------------------------------------------
// GetTask
// -----------------------------------------------------------------------------

type GetTask struct {
	store *task.Store
	id    core.ID
}

func NewGetTask(store *task.Store, id core.ID) *GetTask {
	return &GetTask{
		store: store,
		id:    id,
	}
}

func (uc *GetTask) Execute(ctx context.Context) (*task.Task, error) {
	return uc.store.Get(ctx, uc.id)
}

// -----------------------------------------------------------------------------
// ListTasks
// -----------------------------------------------------------------------------

type ListTasks struct {
	store  *task.Store
	status task.Status
}

// NewListTasks lists all tasks; a non-empty status narrows the result.
func NewListTasks(store *task.Store, status task.Status) *ListTasks {
	return &ListTasks{
		store:  store,
		status: status,
	}
}

func (uc *ListTasks) Execute(ctx context.Context) ([]*task.Task, error) {
	all, err := uc.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if uc.status == "" {
		return all, nil
	}
	out := make([]*task.Task, 0, len(all))
	for _, t := range all {
		if t.Status == uc.status {
			out = append(out, t)
		}
	}
	return out, nil
}
