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

// AddMembersController handles the add-members endpoint only. Membership
// management is an admin operation.
type AddMembersController struct {
	uc *usecase.AddMembersUseCase
}

func NewAddMembersController(pool *pgxpool.Pool, notifier usecase.Notifier) *AddMembersController {
	return &AddMembersController{
		uc: usecase.NewAddMembersUseCase(repoAdapter.NewPgTeamRepository(pool), notifier),
	}
}

type addMembersRequest struct {
	UserIDs []string `json:"user_ids" binding:"required"`
}

func (h *AddMembersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.Role(c) != string(collab.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		teamID := c.Param("teamId")
		if teamID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "teamId is required"})
			return
		}

		var req addMembersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		added, err := h.uc.Execute(ctx, usecase.AddMembersInput{
			TeamID:  teamID,
			UserIDs: req.UserIDs,
			ActorID: auth.UserID(c),
		})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"team_id": teamID, "added": added})
	}
}
