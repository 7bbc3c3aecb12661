package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Status  int        `json:"status"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// RespondOK sends a 200 with the standard envelope.
func RespondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// RespondCreated sends a 201 with the standard envelope.
func RespondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// RespondWithError sends the standard error envelope.
func RespondWithError(c *gin.Context, status int, err *RequestError) {
	c.JSON(status, Response{
		Status: status,
		Error:  err.GetErrorInfo(),
	})
}

// RespondWithServerError reports an unexpected failure as a 500.
func RespondWithServerError(c *gin.Context, reason string, err error) {
	reqErr := NewRequestError(http.StatusInternalServerError, reason, err)
	RespondWithError(c, reqErr.StatusCode, reqErr)
}
