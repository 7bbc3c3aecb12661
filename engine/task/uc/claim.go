package uc

import (
	"context"

	"github.com/Keith9922/Ketcher-demo/engine/core"
	"github.com/Keith9922/Ketcher-demo/engine/task"
)

// -----------------------------------------------------------------------------
// ClaimTask
// -----------------------------------------------------------------------------

// ClaimTask moves a NEW task to IN_PROGRESS on behalf of an annotator.
// Re-claiming a task already held by the same annotator is a no-op; a claim by
// anyone else is refused so work is never silently taken over.
type ClaimTask struct {
	store     *task.Store
	id        core.ID
	annotator string
}

func NewClaimTask(store *task.Store, id core.ID, annotator string) *ClaimTask {
	return &ClaimTask{
		store:     store,
		id:        id,
		annotator: annotator,
	}
}

func (uc *ClaimTask) Execute(ctx context.Context) (*task.Task, error) {
	return uc.store.Update(ctx, uc.id, func(t *task.Task) error {
		switch t.Status {
		case task.StatusNew:
			t.Status = task.StatusInProgress
			t.ClaimedBy = uc.annotator
			return nil
		case task.StatusInProgress:
			if t.ClaimedBy == uc.annotator {
				return nil
			}
			// Forced reassignment is rejected; the claim edge only exists
			// out of NEW.
			return &task.IllegalTransitionError{ID: t.ID, From: t.Status, Op: "claim"}
		default:
			return &task.IllegalTransitionError{ID: t.ID, From: t.Status, Op: "claim"}
		}
	})
}
