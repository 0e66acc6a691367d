package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clipstream/internal/application"
	"clipstream/pkg/response"
)

// writeServiceError translates application sentinels into HTTP statuses.
// Anything unrecognized is a storage or infrastructure failure and surfaces
// as a plain 500 without leaking internals.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrNotAllowed):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrVideoNotFound),
		errors.Is(err, application.ErrCommentNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrAlreadyFollowing),
		errors.Is(err, application.ErrUsernameTaken),
		errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrSelfFollow),
		errors.Is(err, application.ErrEmptyComment):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
