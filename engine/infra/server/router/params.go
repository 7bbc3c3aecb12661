package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keith9922/Ketcher-demo/engine/core"
)

// GetTaskID parses the task_id path parameter, answering the request itself
// when the id is malformed.
func GetTaskID(c *gin.Context) (core.ID, bool) {
	id, err := core.ParseID(c.Param("task_id"))
	if err != nil {
		reqErr := NewRequestError(http.StatusBadRequest, "invalid task id", err)
		RespondWithError(c, reqErr.StatusCode, reqErr)
		return id, false
	}
	return id, true
}
