package realtime

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	id       string
	userID   string
	sent     [][]byte
	sendErr  error
	closed   bool
	closeArg int
}

func (f *fakeConn) ConnID() string { return f.id }
func (f *fakeConn) Owner() string  { return f.userID }

func (f *fakeConn) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeConn) Close(code int, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.closeArg = code
}

func (f *fakeConn) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestHub_PushDeliversToAllConnectionsOfUser(t *testing.T) {
	hub := NewHub()
	c1 := &fakeConn{id: "c1", userID: "u1"}
	c2 := &fakeConn{id: "c2", userID: "u1"}
	other := &fakeConn{id: "c3", userID: "u2"}
	hub.Register(c1)
	hub.Register(c2)
	hub.Register(other)

	delivered := hub.Push("u1", []byte("hello"))

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 1, c1.sentCount())
	assert.Equal(t, 1, c2.sentCount())
	assert.Equal(t, 0, other.sentCount())
}

func TestHub_PushAfterUnregisterDoesNotDeliver(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{id: "c1", userID: "u1"}
	hub.Register(conn)
	hub.Unregister(conn)

	delivered := hub.Push("u1", []byte("hello"))

	assert.Equal(t, 0, delivered)
	assert.Equal(t, 0, conn.sentCount())
	assert.Equal(t, 0, hub.Connections("u1"))
}

func TestHub_PushToUnknownUserIsNoop(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.Push("nobody", []byte("x")))
}

func TestHub_FailingConnectionIsUnregisteredAndClosed(t *testing.T) {
	hub := NewHub()
	healthy := &fakeConn{id: "ok", userID: "u1"}
	broken := &fakeConn{id: "bad", userID: "u1", sendErr: errors.New("write: broken pipe")}
	hub.Register(healthy)
	hub.Register(broken)

	delivered := hub.Push("u1", []byte("payload"))

	assert.Equal(t, 1, delivered)
	assert.True(t, broken.closed)
	require.Equal(t, 1, hub.Connections("u1"))

	// Subsequent pushes only reach the healthy connection.
	hub.Push("u1", []byte("again"))
	assert.Equal(t, 2, healthy.sentCount())
}

func TestHub_UnregisterUnknownConnectionIsNoop(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{id: "c1", userID: "u1"}
	hub.Unregister(conn) // never registered
	assert.Equal(t, 0, hub.Connections("u1"))
}

func TestHub_CloseTerminatesEverything(t *testing.T) {
	hub := NewHub()
	c1 := &fakeConn{id: "c1", userID: "u1"}
	c2 := &fakeConn{id: "c2", userID: "u2"}
	hub.Register(c1)
	hub.Register(c2)

	hub.Close()

	assert.True(t, c1.closed)
	assert.True(t, c2.closed)
	assert.Equal(t, 0, hub.Connections("u1"))
	assert.Equal(t, 0, hub.Connections("u2"))
}

func TestHub_ConcurrentRegisterPushUnregister(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		conn := &fakeConn{id: string(rune('a' + i)), userID: "u1"}
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Register(conn)
			hub.Push("u1", []byte("m"))
			hub.Unregister(conn)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, hub.Connections("u1"))
}
