package task

import (
	"fmt"
	"strings"

	"github.com/Keith9922/Ketcher-demo/engine/core"
)

// NotFoundError reports an unknown task id.
type NotFoundError struct {
	ID core.ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

// IllegalTransitionError reports an operation applied in a state that does
// not allow it.
type IllegalTransitionError struct {
	ID   core.ID
	From Status
	Op   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("task %s: cannot %s from status %s", e.ID, e.Op, e.From)
}

// AuthorMismatchError reports a submit or claim by someone other than the
// annotator holding the task.
type AuthorMismatchError struct {
	ID        core.ID
	ClaimedBy string
	Actor     string
}

func (e *AuthorMismatchError) Error() string {
	return fmt.Sprintf("task %s is claimed by %q, not %q", e.ID, e.ClaimedBy, e.Actor)
}

// QCGateError reports an approval attempt on a submission that failed QC
// without a manual-review escape.
type QCGateError struct {
	ID       core.ID
	Warnings []string
}

func (e *QCGateError) Error() string {
	return fmt.Sprintf("task %s failed quality checks (%s) and cannot be approved",
		e.ID, strings.Join(e.Warnings, ", "))
}
