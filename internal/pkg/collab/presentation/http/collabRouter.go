package http

import (
	"go-collab/internal/infrastructure/auth"
	"go-collab/internal/infrastructure/realtime"
	"go-collab/internal/pkg/collab/application/usecase"
	"go-collab/internal/pkg/collab/presentation/controller"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes registers the collaboration endpoints under the given router
// group. It constructs per-endpoint controllers and binds them directly to
// routes. The websocket route verifies its credential in-handler so it can
// answer with a websocket close code instead of an HTTP status.
func RegisterRoutes(
	g *gin.RouterGroup,
	pool *pgxpool.Pool,
	notifier usecase.Notifier,
	unread usecase.UnreadCounter,
	hub *realtime.Hub,
	guard *auth.Guard,
	rtCfg realtime.Config,
) {
	createActivityCtl := controller.NewCreateActivityController(pool, notifier)
	transitionCtl := controller.NewTransitionActivityController(pool, notifier)
	assignCtl := controller.NewAssignUserController(pool, notifier)
	unassignCtl := controller.NewUnassignUserController(pool, notifier)
	addRemarkCtl := controller.NewAddRemarkController(pool, notifier)
	addMembersCtl := controller.NewAddMembersController(pool, notifier)
	removeMemberCtl := controller.NewRemoveMemberController(pool, notifier)
	listMembersCtl := controller.NewListMembersController(pool)
	listNotificationsCtl := controller.NewListNotificationsController(pool)
	unreadCountCtl := controller.NewUnreadCountController(pool, unread)
	markReadCtl := controller.NewMarkReadController(pool, unread)
	markAllReadCtl := controller.NewMarkAllReadController(pool, unread)
	socketCtl := controller.NewNotificationSocketController(hub, guard, rtCfg)

	// GET /api/v1/notifications/ws -> realtime notification channel
	g.GET("/notifications/ws", socketCtl.Handle())

	authed := g.Group("", auth.RequireAuth(guard))

	// POST /api/v1/teams/:teamId/activities -> open a new activity
	authed.POST("/teams/:teamId/activities", createActivityCtl.Handle())

	// PATCH /api/v1/activities/:activityId/status -> status transition
	authed.PATCH("/activities/:activityId/status", transitionCtl.Handle())

	// POST /api/v1/activities/:activityId/assignees -> assign a user
	authed.POST("/activities/:activityId/assignees", assignCtl.Handle())

	// DELETE /api/v1/activities/:activityId/assignees/:userId -> unassign
	authed.DELETE("/activities/:activityId/assignees/:userId", unassignCtl.Handle())

	// POST /api/v1/activities/:activityId/remarks -> append a remark
	authed.POST("/activities/:activityId/remarks", addRemarkCtl.Handle())

	// POST /api/v1/teams/:teamId/members -> add members (admin)
	authed.POST("/teams/:teamId/members", addMembersCtl.Handle())

	// DELETE /api/v1/teams/:teamId/members/:userId -> remove member (admin)
	authed.DELETE("/teams/:teamId/members/:userId", removeMemberCtl.Handle())

	// GET /api/v1/teams/:teamId/members -> list member ids
	authed.GET("/teams/:teamId/members", listMembersCtl.Handle())

	// GET /api/v1/notifications -> notification inbox
	authed.GET("/notifications", listNotificationsCtl.Handle())

	// GET /api/v1/notifications/unread-count -> unread badge
	authed.GET("/notifications/unread-count", unreadCountCtl.Handle())

	// PATCH /api/v1/notifications/read-all -> mark everything read
	authed.PATCH("/notifications/read-all", markAllReadCtl.Handle())

	// PATCH /api/v1/notifications/:notificationId/read -> mark one read
	authed.PATCH("/notifications/:notificationId/read", markReadCtl.Handle())
}
