// Package task holds the annotation task state machine and its storage.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
	"github.com/Keith9922/Ketcher-demo/engine/core"
	"github.com/Keith9922/Ketcher-demo/engine/qc"
)

// -----------------------------------------------------------------------------
// Status
// -----------------------------------------------------------------------------

// Status is the lifecycle state of a task. APPROVED is the only terminal
// state; REJECTED tasks stay claimed and can be resubmitted.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusSubmitted  Status = "SUBMITTED"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

func (s Status) IsTerminal() bool {
	return s == StatusApproved
}

// -----------------------------------------------------------------------------
// Decision
// -----------------------------------------------------------------------------

// Decision is a reviewer's verdict on a submitted task.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// ParseDecision accepts the verdict case-insensitively.
func ParseDecision(raw string) (Decision, error) {
	switch Decision(strings.ToUpper(strings.TrimSpace(raw))) {
	case DecisionApproved:
		return DecisionApproved, nil
	case DecisionRejected:
		return DecisionRejected, nil
	default:
		return "", fmt.Errorf("invalid decision %q: must be APPROVED or REJECTED", raw)
	}
}

// -----------------------------------------------------------------------------
// Task
// -----------------------------------------------------------------------------

// Source is the structure a task was created with, before any annotation.
type Source struct {
	SMILES string `json:"smiles,omitempty"`
	Mol    string `json:"mol,omitempty"`
}

// Annotation is the structure an annotator submitted, plus the canonical
// forms the engine derived from it.
type Annotation struct {
	SMILES                string      `json:"smiles,omitempty"`
	Mol                   string      `json:"mol,omitempty"`
	Format                chem.Format `json:"format,omitempty"`
	CanonicalSMILES       string      `json:"canonical_smiles,omitempty"`
	CanonicalMol          string      `json:"canonical_mol,omitempty"`
	ManualReviewRequested bool        `json:"manual_review_requested,omitempty"`
	SubmittedBy           string      `json:"submitted_by"`
	SubmittedAt           time.Time   `json:"submitted_at"`
}

// Context is optional environmental metadata attached at creation. The
// workflow never interprets it; it rides along for downstream consumers.
type Context struct {
	PH          *float64 `json:"ph,omitempty"`
	Solvent     string   `json:"solvent,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// Review is the reviewer verdict recorded on the latest submission.
type Review struct {
	Decision   Decision  `json:"decision"`
	Comment    string    `json:"comment,omitempty"`
	ReviewedBy string    `json:"reviewed_by"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// Task is an annotation work item.
type Task struct {
	ID         core.ID     `json:"id"`
	Title      string      `json:"title"`
	Status     Status      `json:"status"`
	Source     Source      `json:"source"`
	ClaimedBy  string      `json:"claimed_by,omitempty"`
	Annotation *Annotation `json:"annotation,omitempty"`
	QC         *qc.Result  `json:"qc,omitempty"`
	Review     *Review     `json:"review,omitempty"`
	Context    *Context    `json:"context,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// New creates a NEW task. A task needs a title and at least one structure
// field to be workable.
func New(title string, source Source) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	if strings.TrimSpace(source.SMILES) == "" && strings.TrimSpace(source.Mol) == "" {
		return nil, fmt.Errorf("task %q needs a smiles or mol source", title)
	}
	id, err := core.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to mint task id: %w", err)
	}
	now := time.Now().UTC()
	return &Task{
		ID:        id,
		Title:     title,
		Status:    StatusNew,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Clone returns a deep copy so store snapshots never alias caller state.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := *t
	if t.Annotation != nil {
		ann := *t.Annotation
		out.Annotation = &ann
	}
	out.QC = t.QC.Clone()
	if t.Review != nil {
		rev := *t.Review
		out.Review = &rev
	}
	if t.Context != nil {
		tc := *t.Context
		if t.Context.PH != nil {
			ph := *t.Context.PH
			tc.PH = &ph
		}
		if t.Context.Temperature != nil {
			temp := *t.Context.Temperature
			tc.Temperature = &temp
		}
		out.Context = &tc
	}
	return &out
}
