package uc

import (
	"context"
	"time"

	"github.com/Keith9922/Ketcher-demo/engine/core"
	"github.com/Keith9922/Ketcher-demo/engine/task"
)

// -----------------------------------------------------------------------------
// ReviewTask
// -----------------------------------------------------------------------------

// ReviewTask records a verdict on a SUBMITTED task. Approval is gated on the
// stored QC verdict: a failed QC can only be approved when the annotator
// requested manual review on submission.
type ReviewTask struct {
	store    *task.Store
	id       core.ID
	reviewer string
	decision task.Decision
	comment  string
}

type ReviewInput struct {
	ID       core.ID
	Reviewer string
	Decision task.Decision
	Comment  string
}

func NewReviewTask(store *task.Store, in ReviewInput) *ReviewTask {
	return &ReviewTask{
		store:    store,
		id:       in.ID,
		reviewer: in.Reviewer,
		decision: in.Decision,
		comment:  in.Comment,
	}
}

func (uc *ReviewTask) Execute(ctx context.Context) (*task.Task, error) {
	return uc.store.Update(ctx, uc.id, func(t *task.Task) error {
		if t.Status != task.StatusSubmitted {
			return &task.IllegalTransitionError{ID: t.ID, From: t.Status, Op: "review"}
		}
		if uc.decision == task.DecisionApproved && !t.QC.Passed() && !t.QC.ManualEscape() {
			return &task.QCGateError{ID: t.ID, Warnings: t.QC.Warnings}
		}

		t.Review = &task.Review{
			Decision:   uc.decision,
			Comment:    uc.comment,
			ReviewedBy: uc.reviewer,
			ReviewedAt: time.Now().UTC(),
		}
		if uc.decision == task.DecisionApproved {
			t.Status = task.StatusApproved
		} else {
			t.Status = task.StatusRejected
		}
		return nil
	})
}
