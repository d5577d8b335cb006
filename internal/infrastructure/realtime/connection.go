package realtime

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Close codes used by the hub beyond the standard websocket set.
const (
	// CloseInvalidCredential is sent when the handshake credential fails
	// verification; such a connection is never registered.
	CloseInvalidCredential = 4001
	// CloseHeartbeatTimeout is sent when the peer missed too many pings.
	CloseHeartbeatTimeout = 4002
)

// Connection wraps a websocket and coordinates outbound writes via a buffered channel.
// A connection belongs to exactly one user and is safe for concurrent use.
type Connection struct {
	id     string
	userID string

	ws      *websocket.Conn
	cfg     Config
	send    chan []byte
	pending atomic.Int32 // pings sent since the last pong
	once    sync.Once
	close   chan struct{}
}

// NewConnection constructs a Connection for the given user.
func NewConnection(userID string, ws *websocket.Conn, cfg Config) *Connection {
	cfg = cfg.withDefaults()
	return &Connection{
		id:     uuid.NewString(),
		userID: userID,
		ws:     ws,
		cfg:    cfg,
		send:   make(chan []byte, cfg.SendBuffer),
		close:  make(chan struct{}),
	}
}

// ConnID returns the unique identifier of this connection.
func (c *Connection) ConnID() string { return c.id }

// Owner returns the user ID the connection was registered for.
func (c *Connection) Owner() string { return c.userID }

// Start launches the write loop. It must be called exactly once per connection.
func (c *Connection) Start() {
	go c.writeLoop()
}

// Send enqueues payload for delivery. If the client is slow and the buffer is full,
// the connection is closed to keep backpressure bounded.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.close:
		return errors.New("connection closed")
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return errors.New("connection buffer exceeded")
	}
}

// Pong records a heartbeat answer from the peer. Wire it to the websocket
// pong handler of the reading task.
func (c *Connection) Pong() {
	c.pending.Store(0)
}

// Closed reports whether the connection has been shut down.
func (c *Connection) Closed() bool {
	select {
	case <-c.close:
		return true
	default:
		return false
	}
}

// Done is closed once the connection shuts down, for callers that need to wait.
func (c *Connection) Done() <-chan struct{} { return c.close }

// Close terminates the connection and stops the write loop.
func (c *Connection) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.close)
		_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(c.cfg.WriteTimeout))
		_ = c.ws.Close()
	})
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(c.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.close:
			return
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				c.Close(websocket.CloseGoingAway, "write failed")
				return
			}
		case <-ticker.C:
			if int(c.pending.Load()) >= c.cfg.MaxMissedHeartbeats {
				c.Close(CloseHeartbeatTimeout, "missed heartbeats")
				return
			}
			c.pending.Add(1)
			if err := c.writePing(); err != nil {
				c.Close(websocket.CloseGoingAway, "ping failed")
				return
			}
		}
	}
}

func (c *Connection) writeMessage(payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) writePing() error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}
