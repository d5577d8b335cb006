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

// UnassignUserController handles the unassign endpoint only.
type UnassignUserController struct {
	uc *usecase.UnassignUserUseCase
}

func NewUnassignUserController(pool *pgxpool.Pool, notifier usecase.Notifier) *UnassignUserController {
	return &UnassignUserController{
		uc: usecase.NewUnassignUserUseCase(repoAdapter.NewPgActivityRepository(pool), notifier),
	}
}

func (h *UnassignUserController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		activityID := c.Param("activityId")
		userID := c.Param("userId")
		if activityID == "" || userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "activityId and userId are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		activity, err := h.uc.Execute(ctx, usecase.UnassignUserInput{
			ActivityID: activityID,
			UserID:     userID,
			ActorID:    auth.UserID(c),
		})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, activity)
	}
}
