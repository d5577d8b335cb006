package controller

import (
	"context"
	"net/http"
	"time"

	"go-collab/internal/infrastructure/auth"
	collab "go-collab/internal/pkg/collab/application/domain"
	"go-collab/internal/pkg/collab/application/usecase"
	repoAdapter "go-collab/internal/pkg/collab/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransitionActivityController handles the status-change endpoint only.
type TransitionActivityController struct {
	uc *usecase.TransitionActivityUseCase
}

func NewTransitionActivityController(pool *pgxpool.Pool, notifier usecase.Notifier) *TransitionActivityController {
	return &TransitionActivityController{
		uc: usecase.NewTransitionActivityUseCase(repoAdapter.NewPgActivityRepository(pool), notifier),
	}
}

type transitionActivityRequest struct {
	Status string `json:"status" binding:"required"`
	Remark string `json:"remark"`
}

func (h *TransitionActivityController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		activityID := c.Param("activityId")
		if activityID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "activityId is required"})
			return
		}

		var req transitionActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		activity, err := h.uc.Execute(ctx, usecase.TransitionActivityInput{
			ActivityID: activityID,
			NewStatus:  collab.Status(req.Status),
			ActorID:    auth.UserID(c),
			RemarkText: req.Remark,
		})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, activity)
	}
}
