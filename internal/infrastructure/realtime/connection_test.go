package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heartbeatConfig() Config {
	return Config{
		HeartbeatInterval:   20 * time.Millisecond,
		MaxMissedHeartbeats: 2,
		WriteTimeout:        time.Second,
		SendBuffer:          8,
	}
}

// dialConnection runs a websocket server that wraps each accepted socket in a
// started Connection, and returns the client side plus the server-side
// Connection. With serveReads the server consumes inbound traffic and feeds
// pong control frames into Connection.Pong, the way the socket controller does.
func dialConnection(t *testing.T, cfg Config, serveReads bool) (*websocket.Conn, *Connection) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	conns := make(chan *Connection, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConnection("u1", ws, cfg)
		conn.Start()
		conns <- conn
		if !serveReads {
			<-conn.Done()
			return
		}
		ws.SetPongHandler(func(string) error {
			conn.Pong()
			return nil
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	conn := <-conns
	t.Cleanup(func() { conn.Close(websocket.CloseGoingAway, "test done") })
	return client, conn
}

func TestConnection_ClosesAfterMissedHeartbeats(t *testing.T) {
	client, conn := dialConnection(t, heartbeatConfig(), false)

	// Swallow pings instead of answering them, so the peer looks dead.
	client.SetPingHandler(func(string) error { return nil })

	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				readErr <- err
				return
			}
		}
	}()

	select {
	case <-conn.Done():
	case <-time.After(time.Second):
		t.Fatal("connection never timed out")
	}
	assert.True(t, conn.Closed())

	select {
	case err := <-readErr:
		assert.True(t, websocket.IsCloseError(err, CloseHeartbeatTimeout), "expected heartbeat close code, got %v", err)
	case <-time.After(time.Second):
		t.Fatal("close frame never reached the peer")
	}
}

func TestConnection_PongKeepsConnectionAlive(t *testing.T) {
	cfg := heartbeatConfig()
	client, conn := dialConnection(t, cfg, true)

	// Reading drives the default ping handler, which answers every ping.
	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-conn.Done():
		t.Fatal("connection closed despite timely pongs")
	case <-time.After(8 * cfg.HeartbeatInterval):
	}
	assert.False(t, conn.Closed())
}
