package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keith9922/Ketcher-demo/engine/chem"
	"github.com/Keith9922/Ketcher-demo/engine/task"
	"github.com/Keith9922/Ketcher-demo/engine/task/exporter"
)

// MapDomainError translates workflow and engine errors into HTTP semantics:
// unknown ids are 404, illegal transitions 409, authorship violations 403,
// QC-gated approvals 422, bad structures 400 and engine trouble 502/504.
func MapDomainError(err error) *RequestError {
	var (
		notFound    *task.NotFoundError
		illegal     *task.IllegalTransitionError
		mismatch    *task.AuthorMismatchError
		qcGate      *task.QCGateError
		invalid     *chem.InvalidInputError
		timeout     *chem.TimeoutError
		engineErr   *chem.EngineError
		unsupported *exporter.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &notFound):
		return NewRequestError(http.StatusNotFound, notFound.Error(), err)
	case errors.As(err, &illegal):
		return NewRequestError(http.StatusConflict, illegal.Error(), err)
	case errors.As(err, &mismatch):
		return NewRequestError(http.StatusForbidden, mismatch.Error(), err)
	case errors.As(err, &qcGate):
		return NewRequestError(http.StatusUnprocessableEntity, qcGate.Error(), err)
	case errors.As(err, &invalid):
		return NewRequestError(http.StatusBadRequest, invalid.Error(), err)
	case errors.As(err, &timeout):
		return NewRequestError(http.StatusGatewayTimeout, timeout.Error(), err)
	case errors.As(err, &engineErr):
		return NewRequestError(http.StatusBadGateway, engineErr.Error(), err)
	case errors.As(err, &unsupported):
		return NewRequestError(http.StatusBadRequest, unsupported.Error(), err)
	default:
		return NewRequestError(http.StatusInternalServerError, "internal server error", err)
	}
}

// RespondWithDomainError maps and sends a domain error in one step.
func RespondWithDomainError(c *gin.Context, err error) {
	reqErr := MapDomainError(err)
	RespondWithError(c, reqErr.StatusCode, reqErr)
}
