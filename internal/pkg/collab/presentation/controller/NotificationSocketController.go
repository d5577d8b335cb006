package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"go-collab/internal/infrastructure/auth"
	"go-collab/internal/infrastructure/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// NotificationSocketController handles the realtime notification endpoint.
// Each client holds one long-lived connection; the server pushes frames and
// the only client traffic is heartbeat pongs.
type NotificationSocketController struct {
	hub   *realtime.Hub
	guard *auth.Guard
	cfg   realtime.Config
}

func NewNotificationSocketController(hub *realtime.Hub, guard *auth.Guard, cfg realtime.Config) *NotificationSocketController {
	return &NotificationSocketController{hub: hub, guard: guard, cfg: cfg}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when a frontend
		// origin list is configured.
		return true
	},
}

type connectionAck struct {
	Type string `json:"type"`
	Data struct {
		Status string `json:"status"`
		UserID string `json:"user_id"`
	} `json:"data"`
}

// Handle upgrades the connection, verifies the credential, and registers the
// connection with the hub until the client disconnects. An invalid credential
// is answered with close code 4001 and the connection is never registered.
func (ctl *NotificationSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c.Request)

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		claims, err := ctl.guard.Verify(token)
		if err != nil {
			deadline := time.Now().Add(ctl.cfg.WriteTimeout)
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(realtime.CloseInvalidCredential, "invalid credential"), deadline)
			_ = ws.Close()
			return
		}

		conn := realtime.NewConnection(claims.UserID, ws, ctl.cfg)
		conn.Start()
		ctl.hub.Register(conn)
		defer func() {
			ctl.hub.Unregister(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ack := connectionAck{Type: "connection"}
		ack.Data.Status = "connected"
		ack.Data.UserID = claims.UserID
		if payload, err := json.Marshal(ack); err == nil {
			_ = conn.Send(payload)
		}

		ctl.readLoop(ws, conn)
	}
}

// readLoop consumes the socket until it drops. Its only job beyond detecting
// the close is feeding pongs back into the connection's heartbeat counter.
func (ctl *NotificationSocketController) readLoop(ws *websocket.Conn, conn *realtime.Connection) {
	readTimeout := ctl.cfg.HeartbeatInterval * time.Duration(ctl.cfg.MaxMissedHeartbeats+1)
	ws.SetReadLimit(1 << 16)
	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		conn.Pong()
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
		// Application frames from the client are not part of the protocol;
		// tolerate and ignore them.
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	}
}
