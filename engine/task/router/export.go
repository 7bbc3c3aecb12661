package taskrouter

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keith9922/Ketcher-demo/engine/infra/server/router"
	"github.com/Keith9922/Ketcher-demo/engine/task/exporter"
	"github.com/Keith9922/Ketcher-demo/engine/task/uc"
)

// exportTasks streams the approved tasks as a downloadable file. Format comes
// from ?format= (smiles, csv, sdf).
func exportTasks(c *gin.Context) {
	state := router.GetAppState(c)
	if state == nil {
		return
	}
	format, err := exporter.ParseFormat(c.DefaultQuery("format", string(exporter.FormatSMILES)))
	if err != nil {
		router.RespondWithDomainError(c, err)
		return
	}
	tasks, err := uc.NewListTasks(state.Store, "").Execute(c.Request.Context())
	if err != nil {
		router.RespondWithDomainError(c, err)
		return
	}
	artifact, err := exporter.Export(c.Request.Context(), tasks, format)
	if err != nil {
		router.RespondWithDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
