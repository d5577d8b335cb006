package v1

import (
	"go-collab/internal/infrastructure/auth"
	"go-collab/internal/infrastructure/realtime"
	"go-collab/internal/pkg/collab/application/usecase"
	httpHandler "go-collab/internal/pkg/collab/presentation/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(
	r *gin.Engine,
	pool *pgxpool.Pool,
	notifier usecase.Notifier,
	unread usecase.UnreadCounter,
	hub *realtime.Hub,
	guard *auth.Guard,
	rtCfg realtime.Config,
) {
	v1 := r.Group("/api/v1")
	httpHandler.RegisterRoutes(v1, pool, notifier, unread, hub, guard, rtCfg)
}
