package controller

import (
	"context"
	"net/http"
	"time"

	"go-collab/internal/infrastructure/auth"
	"go-collab/internal/pkg/collab/application/usecase"
	repoAdapter "go-collab/internal/pkg/collab/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssignUserController handles the assign endpoint only.
type AssignUserController struct {
	uc *usecase.AssignUserUseCase
}

func NewAssignUserController(pool *pgxpool.Pool, notifier usecase.Notifier) *AssignUserController {
	return &AssignUserController{
		uc: usecase.NewAssignUserUseCase(repoAdapter.NewPgActivityRepository(pool), notifier),
	}
}

type assignUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *AssignUserController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		activityID := c.Param("activityId")
		if activityID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "activityId is required"})
			return
		}

		var req assignUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		activity, err := h.uc.Execute(ctx, usecase.AssignUserInput{
			ActivityID: activityID,
			UserID:     req.UserID,
			ActorID:    auth.UserID(c),
		})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, activity)
	}
}
