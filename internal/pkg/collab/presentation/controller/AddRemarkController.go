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

// AddRemarkController handles the add-remark endpoint only.
type AddRemarkController struct {
	uc *usecase.AddRemarkUseCase
}

func NewAddRemarkController(pool *pgxpool.Pool, notifier usecase.Notifier) *AddRemarkController {
	return &AddRemarkController{
		uc: usecase.NewAddRemarkUseCase(
			repoAdapter.NewPgActivityRepository(pool),
			repoAdapter.NewPgTeamRepository(pool),
			notifier,
		),
	}
}

type addRemarkRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *AddRemarkController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		activityID := c.Param("activityId")
		if activityID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "activityId is required"})
			return
		}

		var req addRemarkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		remark, err := h.uc.Execute(ctx, usecase.AddRemarkInput{
			ActivityID: activityID,
			AuthorID:   auth.UserID(c),
			Text:       req.Text,
		})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusCreated, remark)
	}
}
