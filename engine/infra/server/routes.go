package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chemrouter "github.com/Keith9922/Ketcher-demo/engine/chem/router"
	taskrouter "github.com/Keith9922/Ketcher-demo/engine/task/router"
	"github.com/Keith9922/Ketcher-demo/pkg/version"
)

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/health", s.healthHandler())

	api := r.Group("/api/v0")
	taskrouter.Register(api)
	chemrouter.Register(api)
}

// Health endpoint
//
//	@Summary      Get server health
//	@Description  Returns service health together with build information and task count
//	@Tags         health
//	@Produce      json
//	@Success      200 {object} map[string]interface{} "Service is healthy"
//	@Router       /health [get]
func (s *Server) healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"status":      "healthy",
				"ready":       true,
				"version":     info.Version,
				"commit_hash": info.CommitHash,
				"build_date":  info.BuildDate,
				"engine":      s.cfg.Chem.Engine,
				"tasks":       s.state.Store.Len(),
			},
			"message": "Success",
		})
	}
}
