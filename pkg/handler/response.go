package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_transfer_back/pkg/session"
	"wallet_transfer_back/pkg/transfer"
)

type Error struct {
	Message string               `json:"message"`
	Fields  []transfer.FieldError `json:"fields,omitempty"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	_ = c.Error(errors.New(message))
	c.AbortWithStatusJSON(statusCode, Error{Message: message})
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}

// errorStatus сопоставляет ошибки контроллера с HTTP-кодами
func errorStatus(err error) int {
	var verr *transfer.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotConnected):
		return http.StatusPreconditionFailed
	case errors.Is(err, session.ErrConnectInProgress),
		errors.Is(err, session.ErrConnectAborted),
		errors.Is(err, transfer.ErrSubmissionInProgress),
		errors.Is(err, transfer.ErrFormLocked):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func abortWithError(c *gin.Context, err error) {
	body := Error{Message: err.Error()}
	var verr *transfer.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(errorStatus(err), body)
}
