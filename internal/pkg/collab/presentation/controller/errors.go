package controller

import (
	"errors"
	"net/http"

	collab "go-collab/internal/pkg/collab/application/domain"
	"go-collab/internal/pkg/collab/application/usecase"

	"github.com/gin-gonic/gin"
)

// replyUseCaseError maps use case failures to HTTP status codes. Validation
// failures are client errors with no side effects; persistence failures are
// the only 5xx this layer produces.
func replyUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, collab.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, collab.ErrInvalidStatus),
		errors.Is(err, collab.ErrMissingField),
		errors.Is(err, collab.ErrEmptyRemark):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, collab.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, collab.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "not a team member"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
