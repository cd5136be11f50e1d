package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lmnhat/Goldcrest/internal/dto"
	"github.com/lmnhat/Goldcrest/internal/repair"
	"github.com/lmnhat/Goldcrest/internal/service"
)

// respondError maps domain errors onto HTTP statuses: missing scope is 404,
// rejected submissions are 409, an unfocusable dynamic request is 422 and a
// generator payload the repair pipeline could not salvage is 502.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrDuplicateSubmission), errors.Is(err, service.ErrScopeMismatch):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrEmptyFocusSet):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
	case repair.IsDecodeError(err):
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Message: "Generator produced an unusable question payload",
			Details: []string{err.Error()},
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}
