// Package taskrouter exposes the annotation workflow over HTTP.
package taskrouter

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
	"github.com/Keith9922/Ketcher-demo/engine/infra/server/router"
	"github.com/Keith9922/Ketcher-demo/engine/task"
	"github.com/Keith9922/Ketcher-demo/engine/task/uc"
)

// listTasks returns every task, optionally narrowed by ?status=.
func listTasks(c *gin.Context) {
	state := router.GetAppState(c)
	if state == nil {
		return
	}
	status, err := parseStatusFilter(c.Query("status"))
	if err != nil {
		reqErr := router.NewRequestError(http.StatusBadRequest, err.Error(), err)
		router.RespondWithError(c, reqErr.StatusCode, reqErr)
		return
	}
	tasks, err := uc.NewListTasks(state.Store, status).Execute(c.Request.Context())
	if err != nil {
		router.RespondWithDomainError(c, err)
		return
	}
	router.RespondOK(c, "tasks retrieved", gin.H{
		"tasks": tasks,
	})
}

func createTasks(c *gin.Context) {
	state := router.GetAppState(c)
	if state == nil {
		return
	}
	var req CreateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		router.RespondWithBindError(c, err)
		return
	}
	items := make([]uc.CreateInput, 0, len(req.Items))
	for _, item := range req.Items {
		in := uc.CreateInput{
			Title:  item.Title,
			Source: task.Source{SMILES: item.SMILES, Mol: item.Mol},
		}
		if item.Context != nil {
			in.Context = &task.Context{
				PH:          item.Context.PH,
				Solvent:     item.Context.Solvent,
				Temperature: item.Context.Temperature,
			}
		}
		items = append(items, in)
	}
	created, err := uc.NewCreateTasks(state.Store, items).Execute(c.Request.Context())
	if err != nil {
		reqErr := router.NewRequestError(http.StatusBadRequest, err.Error(), err)
		router.RespondWithError(c, reqErr.StatusCode, reqErr)
		return
	}
	for _, t := range created {
		state.Monitoring.RecordTransition("create", string(t.Status))
	}
	router.RespondCreated(c, "tasks created", gin.H{
		"tasks": created,
	})
}

func getTask(c *gin.Context) {
	state := router.GetAppState(c)
	if state == nil {
		return
	}
	id, ok := router.GetTaskID(c)
	if !ok {
		return
	}
	found, err := uc.NewGetTask(state.Store, id).Execute(c.Request.Context())
	if err != nil {
		router.RespondWithDomainError(c, err)
		return
	}
	router.RespondOK(c, "task retrieved", found)
}

func claimTask(c *gin.Context) {
	state := router.GetAppState(c)
	if state == nil {
		return
	}
	id, ok := router.GetTaskID(c)
	if !ok {
		return
	}
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		router.RespondWithBindError(c, err)
		return
	}
	claimed, err := uc.NewClaimTask(state.Store, id, req.Annotator).Execute(c.Request.Context())
	if err != nil {
		router.RespondWithDomainError(c, err)
		return
	}
	state.Monitoring.RecordTransition("claim", string(claimed.Status))
	router.RespondOK(c, "task claimed", claimed)
}

func submitTask(c *gin.Context) {
	state := router.GetAppState(c)
	if state == nil {
		return
	}
	id, ok := router.GetTaskID(c)
	if !ok {
		return
	}
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		router.RespondWithBindError(c, err)
		return
	}
	submitted, err := uc.NewSubmitTask(state.Store, state.Normalizer, uc.SubmitInput{
		ID:           id,
		Author:       req.Author,
		Structure:    chem.Input{SMILES: req.SMILES, Mol: req.Mol},
		ManualReview: req.ManualReview,
	}).Execute(c.Request.Context())
	if err != nil {
		state.Monitoring.RecordNormalization("error")
		router.RespondWithDomainError(c, err)
		return
	}
	if submitted.QC.Passed() {
		state.Monitoring.RecordNormalization("pass")
	} else {
		state.Monitoring.RecordNormalization("fail")
	}
	state.Monitoring.RecordTransition("submit", string(submitted.Status))
	router.RespondOK(c, "task submitted", submitted)
}

func reviewTask(c *gin.Context) {
	state := router.GetAppState(c)
	if state == nil {
		return
	}
	id, ok := router.GetTaskID(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		router.RespondWithBindError(c, err)
		return
	}
	decision, err := task.ParseDecision(req.Decision)
	if err != nil {
		reqErr := router.NewRequestError(http.StatusBadRequest, err.Error(), err)
		router.RespondWithError(c, reqErr.StatusCode, reqErr)
		return
	}
	reviewed, err := uc.NewReviewTask(state.Store, uc.ReviewInput{
		ID:       id,
		Reviewer: req.Reviewer,
		Decision: decision,
		Comment:  req.Comment,
	}).Execute(c.Request.Context())
	if err != nil {
		router.RespondWithDomainError(c, err)
		return
	}
	state.Monitoring.RecordTransition("review", string(reviewed.Status))
	router.RespondOK(c, "task reviewed", reviewed)
}
