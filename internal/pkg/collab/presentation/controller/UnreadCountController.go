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

// UnreadCountController handles the unread badge endpoint only.
type UnreadCountController struct {
	uc *usecase.UnreadCountUseCase
}

func NewUnreadCountController(pool *pgxpool.Pool, unread usecase.UnreadCounter) *UnreadCountController {
	return &UnreadCountController{
		uc: usecase.NewUnreadCountUseCase(repoAdapter.NewPgNotificationRepository(pool), unread),
	}
}

func (h *UnreadCountController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := h.uc.Execute(ctx, usecase.UnreadCountInput{UserID: auth.UserID(c)})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"unread": count})
	}
}
