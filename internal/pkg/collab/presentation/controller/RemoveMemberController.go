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

// RemoveMemberController handles the remove-member endpoint only.
type RemoveMemberController struct {
	uc *usecase.RemoveMemberUseCase
}

func NewRemoveMemberController(pool *pgxpool.Pool, notifier usecase.Notifier) *RemoveMemberController {
	return &RemoveMemberController{
		uc: usecase.NewRemoveMemberUseCase(repoAdapter.NewPgTeamRepository(pool), notifier),
	}
}

func (h *RemoveMemberController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.Role(c) != string(collab.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		teamID := c.Param("teamId")
		userID := c.Param("userId")
		if teamID == "" || userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "teamId and userId are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		removed, err := h.uc.Execute(ctx, usecase.RemoveMemberInput{
			TeamID:  teamID,
			UserID:  userID,
			ActorID: auth.UserID(c),
		})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"team_id": teamID, "user_id": userID, "removed": removed})
	}
}
