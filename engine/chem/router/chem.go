// Package chemrouter exposes structure normalization outside the task
// workflow, for editor-side validation previews.
package chemrouter

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
	"github.com/Keith9922/Ketcher-demo/engine/infra/server/router"
	"github.com/Keith9922/Ketcher-demo/engine/task/uc"
)

type ParseRequest struct {
	SMILES string `json:"smiles"`
	Mol    string `json:"mol"`
}

// parseStructure normalizes a structure and runs QC without touching any task.
func parseStructure(c *gin.Context) {
	state := router.GetAppState(c)
	if state == nil {
		return
	}
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		router.RespondWithBindError(c, err)
		return
	}
	out, err := uc.NewParseStructure(state.Normalizer, chem.Input{
		SMILES: req.SMILES,
		Mol:    req.Mol,
	}).Execute(c.Request.Context())
	if err != nil {
		state.Monitoring.RecordNormalization("error")
		router.RespondWithDomainError(c, err)
		return
	}
	if out.QC.Passed() {
		state.Monitoring.RecordNormalization("pass")
	} else {
		state.Monitoring.RecordNormalization("fail")
	}
	router.RespondOK(c, "structure parsed", out)
}

// generateConformer asks the engine for a 3D MOL-block, bounded by the
// configured conformer timeout.
func generateConformer(c *gin.Context) {
	state := router.GetAppState(c)
	if state == nil {
		return
	}
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		router.RespondWithBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	if timeout := state.Config.Chem.ConformerTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	mol, err := state.Normalizer.Conformer(ctx, chem.Input{
		SMILES: req.SMILES,
		Mol:    req.Mol,
	})
	if err != nil {
		if errors.Is(err, chem.ErrConformerUnsupported) {
			reqErr := router.NewRequestError(http.StatusNotImplemented, err.Error(), err)
			router.RespondWithError(c, reqErr.StatusCode, reqErr)
			return
		}
		router.RespondWithDomainError(c, err)
		return
	}
	router.RespondOK(c, "conformer generated", gin.H{
		"mol": mol,
	})
}

func Register(apiBase *gin.RouterGroup) {
	chemGroup := apiBase.Group("/chem")
	{
		// POST /api/v0/chem/parse
		// Normalize a structure without a task
		chemGroup.POST("/parse", parseStructure)

		// POST /api/v0/chem/conformer
		// Generate a 3D MOL-block
		chemGroup.POST("/conformer", generateConformer)
	}
}
