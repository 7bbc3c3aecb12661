package uc

import (
	"context"
	"time"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
	"github.com/Keith9922/Ketcher-demo/engine/core"
	"github.com/Keith9922/Ketcher-demo/engine/qc"
	"github.com/Keith9922/Ketcher-demo/engine/task"
)

// -----------------------------------------------------------------------------
// SubmitTask
// -----------------------------------------------------------------------------

// SubmitTask normalizes the annotator's structure, evaluates QC and moves the
// task to SUBMITTED. A failed QC never blocks submission; reviewers see the
// warnings. Normalization runs inside the task's critical section, so a
// timeout or engine failure aborts without committing anything.
type SubmitTask struct {
	store        *task.Store
	normalizer   *chem.Normalizer
	id           core.ID
	author       string
	structure    chem.Input
	manualReview bool
}

type SubmitInput struct {
	ID           core.ID
	Author       string
	Structure    chem.Input
	ManualReview bool
}

func NewSubmitTask(store *task.Store, normalizer *chem.Normalizer, in SubmitInput) *SubmitTask {
	return &SubmitTask{
		store:        store,
		normalizer:   normalizer,
		id:           in.ID,
		author:       in.Author,
		structure:    in.Structure,
		manualReview: in.ManualReview,
	}
}

func (uc *SubmitTask) Execute(ctx context.Context) (*task.Task, error) {
	return uc.store.Update(ctx, uc.id, func(t *task.Task) error {
		if t.Status != task.StatusInProgress && t.Status != task.StatusRejected {
			return &task.IllegalTransitionError{ID: t.ID, From: t.Status, Op: "submit"}
		}
		if t.ClaimedBy != uc.author {
			return &task.AuthorMismatchError{ID: t.ID, ClaimedBy: t.ClaimedBy, Actor: uc.author}
		}

		res, err := uc.normalizer.Normalize(ctx, uc.structure)
		if err != nil {
			return err
		}

		t.Annotation = &task.Annotation{
			SMILES:                uc.structure.SMILES,
			Mol:                   uc.structure.Mol,
			Format:                res.Format,
			CanonicalSMILES:       res.CanonicalSMILES,
			CanonicalMol:          res.CanonicalMol,
			ManualReviewRequested: uc.manualReview,
			SubmittedBy:           uc.author,
			SubmittedAt:           time.Now().UTC(),
		}
		t.QC = qc.Evaluate(res, uc.manualReview)
		t.Status = task.StatusSubmitted
		// the previous verdict stays visible until a reviewer rules again
		return nil
	})
}
