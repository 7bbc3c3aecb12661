package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Keith9922/Ketcher-demo/engine/infra/server/appstate"
)

// GetAppState pulls the application state from the request context, answering
// with a 500 when the server was wired without it.
func GetAppState(c *gin.Context) *appstate.State {
	state, err := appstate.GetState(c.Request.Context())
	if err != nil {
		RespondWithServerError(c, "application state not initialized", err)
		return nil
	}
	return state
}
