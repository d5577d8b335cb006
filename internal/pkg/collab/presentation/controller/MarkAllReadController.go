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

// MarkAllReadController handles the mark-all-read endpoint only.
type MarkAllReadController struct {
	uc *usecase.MarkAllReadUseCase
}

func NewMarkAllReadController(pool *pgxpool.Pool, unread usecase.UnreadCounter) *MarkAllReadController {
	return &MarkAllReadController{
		uc: usecase.NewMarkAllReadUseCase(repoAdapter.NewPgNotificationRepository(pool), unread),
	}
}

func (h *MarkAllReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.uc.Execute(ctx, usecase.MarkAllReadInput{UserID: auth.UserID(c)}); err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"read": true})
	}
}
