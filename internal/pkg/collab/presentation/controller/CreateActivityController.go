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

// CreateActivityController handles the create-activity endpoint only (one
// controller per endpoint).
type CreateActivityController struct {
	uc *usecase.CreateActivityUseCase
}

func NewCreateActivityController(pool *pgxpool.Pool, notifier usecase.Notifier) *CreateActivityController {
	return &CreateActivityController{
		uc: usecase.NewCreateActivityUseCase(
			repoAdapter.NewPgActivityRepository(pool),
			repoAdapter.NewPgTeamRepository(pool),
			notifier,
		),
	}
}

type createActivityRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	AssigneeIDs []string   `json:"assignee_ids"`
	TargetDate  *time.Time `json:"target_date"`
}

func (h *CreateActivityController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID := c.Param("teamId")
		if teamID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "teamId is required"})
			return
		}

		var req createActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		activity, err := h.uc.Execute(ctx, usecase.CreateActivityInput{
			TeamID:      teamID,
			Title:       req.Title,
			Description: req.Description,
			CreatorID:   auth.UserID(c),
			AssigneeIDs: req.AssigneeIDs,
			TargetDate:  req.TargetDate,
		})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusCreated, activity)
	}
}
