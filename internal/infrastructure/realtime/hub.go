package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the subset of Connection behavior the hub relies on.
// Production code registers *Connection; tests may register fakes.
type Conn interface {
	ConnID() string
	Owner() string
	Send(payload []byte) error
	Close(code int, reason string)
}

// Hub is the per-user connection registry used for realtime delivery.
// A user may hold any number of concurrent connections (devices, tabs);
// Push writes to all of them. All methods are safe for concurrent use from
// arbitrarily many connection-handler tasks. The hub is an owned instance
// passed to its consumers by handle, never a package-level singleton.
type Hub struct {
	mu    sync.RWMutex
	users map[string]map[string]Conn // userID -> connID -> connection
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{users: make(map[string]map[string]Conn)}
}

// Register adds a connection under its owner. Callers must have validated the
// connection's credential first; the hub trusts Owner().
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	set := h.users[conn.Owner()]
	if set == nil {
		set = make(map[string]Conn)
		h.users[conn.Owner()] = set
	}
	set[conn.ConnID()] = conn
	h.mu.Unlock()
}

// Unregister removes a connection from whichever user it was registered
// under. Unknown connections are ignored, so transport-close paths can call
// it unconditionally.
func (h *Hub) Unregister(conn Conn) {
	h.mu.Lock()
	h.removeLocked(conn.Owner(), conn.ConnID())
	h.mu.Unlock()
}

// Push writes payload to every live connection of userID and returns the
// number of successful deliveries. Connections whose send fails are closed
// and unregistered as a side effect; the failure is never surfaced to the
// caller, since a missed live push is recovered from the persisted
// notification.
func (h *Hub) Push(userID string, payload []byte) int {
	h.mu.RLock()
	set := h.users[userID]
	conns := make([]Conn, 0, len(set))
	for _, conn := range set {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	delivered := 0
	var failed []Conn
	for _, conn := range conns {
		if err := conn.Send(payload); err != nil {
			failed = append(failed, conn)
			continue
		}
		delivered++
	}

	for _, conn := range failed {
		h.Unregister(conn)
		conn.Close(websocket.CloseGoingAway, "delivery failed")
	}
	return delivered
}

// Connections reports how many live connections userID currently holds.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	n := len(h.users[userID])
	h.mu.RUnlock()
	return n
}

// Close terminates every tracked connection and clears the registry.
func (h *Hub) Close() {
	h.mu.Lock()
	var conns []Conn
	for _, set := range h.users {
		for _, conn := range set {
			conns = append(conns, conn)
		}
	}
	h.users = make(map[string]map[string]Conn)
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close(websocket.CloseGoingAway, "hub shutdown")
	}
}

func (h *Hub) removeLocked(userID string, connID string) {
	set := h.users[userID]
	if set == nil {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(h.users, userID)
	}
}
