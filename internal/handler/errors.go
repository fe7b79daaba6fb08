package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/response"
	"github.com/stemsi/gatemock-backend/internal/service"
)

// errInvalidPayload rejects malformed WebSocket actions.
var errInvalidPayload = errors.New("invalid payload")

var domainErrors = []struct {
	err    error
	status int
	code   response.ErrCode
}{
	{exam.ErrInvalidTransition, http.StatusConflict, response.ErrInvalidTransition},
	{exam.ErrInvalidSelection, http.StatusBadRequest, response.ErrInvalidSelection},
	{exam.ErrNotActive, http.StatusConflict, response.ErrNoActiveExam},
	{exam.ErrAlreadySubmitted, http.StatusConflict, response.ErrAlreadySubmitted},
	{exam.ErrIndexOutOfRange, http.StatusBadRequest, response.ErrIndexOutOfRange},
	{exam.ErrOptionOutOfRange, http.StatusBadRequest, response.ErrOptionOutOfRange},
	{exam.ErrNoResult, http.StatusNotFound, response.ErrNoResult},
	{exam.ErrAdminOnly, http.StatusForbidden, response.ErrAdminAccessOnly},
	{exam.ErrUnknownFilter, http.StatusBadRequest, response.ErrUnknownFilter},
	{errInvalidPayload, http.StatusBadRequest, response.ErrInvalidPayload},
	{service.ErrStorageUnavailable, http.StatusServiceUnavailable, response.ErrStorageUnavailable},
}

// classify maps a service or domain error to its HTTP status and code.
func classify(err error) (int, response.ErrCode) {
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			return d.status, d.code
		}
	}
	return http.StatusInternalServerError, response.ErrInternal
}

// failWithError writes the error response for err. Internal errors are
// recorded on the context for the request logger and not echoed back.
func failWithError(c *gin.Context, err error) {
	status, code := classify(err)
	if code == response.ErrInternal {
		_ = c.Error(err)
		response.Fail(c, status, code)
		return
	}
	response.FailWithDetail(c, status, code, err)
}

func errMissingField(what string) error {
	return fmt.Errorf("%w: %s required", errInvalidPayload, what)
}

func errUnknownAction(action string) error {
	return fmt.Errorf("%w: unknown action %q", errInvalidPayload, action)
}
