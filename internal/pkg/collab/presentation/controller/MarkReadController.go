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

// MarkReadController handles the mark-read endpoint only.
type MarkReadController struct {
	uc *usecase.MarkReadUseCase
}

func NewMarkReadController(pool *pgxpool.Pool, unread usecase.UnreadCounter) *MarkReadController {
	return &MarkReadController{
		uc: usecase.NewMarkReadUseCase(repoAdapter.NewPgNotificationRepository(pool), unread),
	}
}

func (h *MarkReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		notificationID := c.Param("notificationId")
		if notificationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "notificationId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err := h.uc.Execute(ctx, usecase.MarkReadInput{
			NotificationID: notificationID,
			UserID:         auth.UserID(c),
		})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": notificationID, "read": true})
	}
}
