package controller

import (
	"context"
	"net/http"
	"time"

	"go-collab/internal/pkg/collab/application/usecase"
	repoAdapter "go-collab/internal/pkg/collab/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListMembersController handles the list-members endpoint only.
type ListMembersController struct {
	uc *usecase.ListMembersUseCase
}

func NewListMembersController(pool *pgxpool.Pool) *ListMembersController {
	return &ListMembersController{
		uc: usecase.NewListMembersUseCase(repoAdapter.NewPgTeamRepository(pool)),
	}
}

func (h *ListMembersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID := c.Param("teamId")
		if teamID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "teamId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		members, err := h.uc.Execute(ctx, usecase.ListMembersInput{TeamID: teamID})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"team_id": teamID, "members": members})
	}
}
