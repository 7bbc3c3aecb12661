package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrInternalCode       = "INTERNAL_ERROR"
	ErrBadRequestCode     = "BAD_REQUEST"
	ErrForbiddenCode      = "FORBIDDEN"
	ErrNotFoundCode       = "NOT_FOUND"
	ErrConflictCode       = "CONFLICT"
	ErrUnprocessableCode  = "UNPROCESSABLE_ENTITY"
	ErrNotImplementedCode = "NOT_IMPLEMENTED"
	ErrBadGatewayCode     = "BAD_GATEWAY"
	ErrGatewayTimeoutCode = "GATEWAY_TIMEOUT"
)

// RequestError represents errors that can occur during request handling
type RequestError struct {
	Reason     string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Reason
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError creates a new RequestError
func NewRequestError(statusCode int, reason string, err error) *RequestError {
	return &RequestError{
		StatusCode: statusCode,
		Reason:     reason,
		Err:        err,
	}
}

// IsRequestError checks if the given error is a RequestError
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// GetErrorInfo extracts error information for the standardized response
func (e *RequestError) GetErrorInfo() *ErrorInfo {
	var details string
	if e.Err != nil {
		details = e.Err.Error()
	}
	code := ErrInternalCode
	switch e.StatusCode {
	case http.StatusBadRequest:
		code = ErrBadRequestCode
	case http.StatusNotFound:
		code = ErrNotFoundCode
	case http.StatusForbidden:
		code = ErrForbiddenCode
	case http.StatusConflict:
		code = ErrConflictCode
	case http.StatusUnprocessableEntity:
		code = ErrUnprocessableCode
	case http.StatusNotImplemented:
		code = ErrNotImplementedCode
	case http.StatusBadGateway:
		code = ErrBadGatewayCode
	case http.StatusGatewayTimeout:
		code = ErrGatewayTimeoutCode
	}
	return &ErrorInfo{
		Code:    code,
		Message: e.Reason,
		Details: details,
	}
}

// RespondWithBindError reports a failed request binding as a 400.
func RespondWithBindError(c *gin.Context, err error) {
	reqErr := NewRequestError(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), err)
	RespondWithError(c, reqErr.StatusCode, reqErr)
}
