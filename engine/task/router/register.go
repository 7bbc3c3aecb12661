package taskrouter

import "github.com/gin-gonic/gin"

func Register(apiBase *gin.RouterGroup) {
	tasksGroup := apiBase.Group("/tasks")
	{
		// GET /api/v0/tasks
		// List tasks, optionally filtered by status
		tasksGroup.GET("", listTasks)

		// POST /api/v0/tasks
		// Create a batch of tasks
		tasksGroup.POST("", createTasks)

		// GET /api/v0/tasks/:task_id
		// Get a single task
		tasksGroup.GET("/:task_id", getTask)

		// POST /api/v0/tasks/:task_id/claim
		// Claim a task for annotation
		tasksGroup.POST("/:task_id/claim", claimTask)

		// POST /api/v0/tasks/:task_id/submit
		// Submit an annotated structure
		tasksGroup.POST("/:task_id/submit", submitTask)

		// POST /api/v0/tasks/:task_id/review
		// Record a review verdict
		tasksGroup.POST("/:task_id/review", reviewTask)
	}

	// GET /api/v0/export
	// Download the task set in a chemistry format
	apiBase.GET("/export", exportTasks)
}
