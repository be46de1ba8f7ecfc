package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/grocerly/backend/internal/lock"
	"github.com/pageza/grocerly/backend/internal/middleware"
	"github.com/pageza/grocerly/backend/internal/service"
)

// Error codes returned in the "code" field of error bodies.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeConflict        = "CONFLICT"
	CodeBusy            = "BUSY"
	CodeInternal        = "INTERNAL_ERROR"
)

// respondError writes the status and body matching the kind of err.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, CodeInternal
	switch {
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, CodeNotFound
	case errors.Is(err, service.ErrInvalidArgument):
		status, code = http.StatusBadRequest, CodeInvalidArgument
	case errors.Is(err, service.ErrConflict):
		status, code = http.StatusConflict, CodeConflict
	case errors.Is(err, lock.ErrTimeout):
		status, code = http.StatusServiceUnavailable, CodeBusy
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		// keep store details out of responses, the logger middleware records them
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.JSON(status, middleware.ErrorResponse{Error: msg, Code: code})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: err.Error(), Code: CodeInvalidArgument})
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "invalid " + name, Code: CodeInvalidArgument})
		return 0, false
	}
	return uint(id), true
}

// owner returns the request owner set by middleware.Owner.
func owner(c *gin.Context) (uuid.UUID, bool) {
	o, ok := middleware.GetOwner(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: "missing owner", Code: "UNAUTHORIZED"})
		return o, false
	}
	return o, true
}
