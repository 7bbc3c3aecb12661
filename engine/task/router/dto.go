package taskrouter

import (
	"fmt"

	"github.com/Keith9922/Ketcher-demo/engine/task"
)

// TaskContextDTO mirrors the optional environmental metadata on a task.
type TaskContextDTO struct {
	PH          *float64 `json:"ph"`
	Solvent     string   `json:"solvent"`
	Temperature *float64 `json:"temperature"`
}

type CreateTaskItem struct {
	Title   string          `json:"title" binding:"required"`
	SMILES  string          `json:"smiles"`
	Mol     string          `json:"mol"`
	Context *TaskContextDTO `json:"context"`
}

// CreateTasksRequest creates a batch of tasks in one call.
type CreateTasksRequest struct {
	Items []CreateTaskItem `json:"items" binding:"required,min=1,dive"`
}

type ClaimRequest struct {
	Annotator string `json:"annotator" binding:"required"`
}

type SubmitRequest struct {
	Author       string `json:"author" binding:"required"`
	SMILES       string `json:"smiles"`
	Mol          string `json:"mol"`
	ManualReview bool   `json:"manual_review"`
}

type ReviewRequest struct {
	Reviewer string `json:"reviewer" binding:"required"`
	Decision string `json:"decision" binding:"required"`
	Comment  string `json:"comment"`
}

// parseStatusFilter validates the optional ?status= query value.
func parseStatusFilter(raw string) (task.Status, error) {
	if raw == "" {
		return "", nil
	}
	switch s := task.Status(raw); s {
	case task.StatusNew, task.StatusInProgress, task.StatusSubmitted,
		task.StatusApproved, task.StatusRejected:
		return s, nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}
