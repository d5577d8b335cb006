package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go-collab/internal/infrastructure/auth"
	collab "go-collab/internal/pkg/collab/application/domain"
	"go-collab/internal/pkg/collab/application/usecase"
	repoAdapter "go-collab/internal/pkg/collab/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListNotificationsController handles the notification inbox endpoint only.
type ListNotificationsController struct {
	uc *usecase.ListNotificationsUseCase
}

func NewListNotificationsController(pool *pgxpool.Pool) *ListNotificationsController {
	return &ListNotificationsController{
		uc: usecase.NewListNotificationsUseCase(repoAdapter.NewPgNotificationRepository(pool)),
	}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		if v := c.Query("limit"); v != "" {
			if i, err := strconv.Atoi(v); err == nil && i > 0 && i <= 200 {
				limit = i
			}
		}
		offset := 0
		if v := c.Query("offset"); v != "" {
			if i, err := strconv.Atoi(v); err == nil && i >= 0 {
				offset = i
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		notifications, err := h.uc.Execute(ctx, usecase.ListNotificationsInput{
			UserID: auth.UserID(c),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			replyUseCaseError(c, err)
			return
		}
		if notifications == nil {
			notifications = []collab.Notification{}
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notifications})
	}
}
