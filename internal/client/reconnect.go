package client

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// State of the logical subscription.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateGaveUp       State = "gave_up"
)

// ErrGaveUp is returned by Run after the attempt cap is hit and no explicit
// retry arrives before the context ends.
var ErrGaveUp = errors.New("client: reconnect attempts exhausted")

// Config controls the reconnection loop.
type Config struct {
	ReconnectInterval time.Duration
	MaxAttempts       int
	HandshakeTimeout  time.Duration
}

// ConfigFromEnv reads RECONNECT_INTERVAL and MAX_RECONNECT_ATTEMPTS with
// defaults of 5s and 10.
func ConfigFromEnv() Config {
	var cfg Config
	if v := os.Getenv("RECONNECT_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ReconnectInterval = d
		}
	}
	if v := os.Getenv("MAX_RECONNECT_ATTEMPTS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			cfg.MaxAttempts = i
		}
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.ReconnectInterval <= 0 {
		c.ReconnectInterval = 5 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 10
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = 10 * time.Second
	}
	return c
}

// Frame is a server-to-client envelope from the realtime channel.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Subscriber maintains one logical notification subscription across
// transport drops. Failed dials and dropped connections alike schedule the
// next dial one fixed interval later, up to MaxAttempts consecutive failures;
// then it parks in StateGaveUp until Retry is called. The attempt counter
// resets once a connection delivers its first frame, so an endpoint that
// accepts the handshake but drops right away still exhausts the cap.
type Subscriber struct {
	endpoint string
	token    string
	cfg      Config
	dial     func(ctx context.Context) (*websocket.Conn, error)

	frames chan Frame
	retry  chan struct{}

	mu       sync.Mutex
	state    State
	attempts int

	closeOnce sync.Once
	closed    chan struct{}
}

// NewSubscriber prepares a subscription to the notification socket at
// endpoint (a ws:// or wss:// URL). The credential is presented as the
// `token` query parameter, the same place the server's guard looks.
func NewSubscriber(endpoint string, token string, cfg Config) *Subscriber {
	cfg = cfg.withDefaults()
	s := &Subscriber{
		endpoint: endpoint,
		token:    token,
		cfg:      cfg,
		frames:   make(chan Frame, 32),
		retry:    make(chan struct{}, 1),
		state:    StateDisconnected,
		closed:   make(chan struct{}),
	}
	s.dial = s.dialWebsocket
	return s
}

func (s *Subscriber) dialWebsocket(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("token", s.token)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: s.cfg.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	return conn, err
}

// State returns the current subscription state.
func (s *Subscriber) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Subscriber) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Frames returns the channel delivering decoded server frames in arrival
// order. It is closed when Run returns.
func (s *Subscriber) Frames() <-chan Frame {
	return s.frames
}

// Retry requests a fresh connection cycle after the attempt cap was hit.
// Calling it in any other state is a no-op.
func (s *Subscriber) Retry() {
	if s.State() != StateGaveUp {
		return
	}
	select {
	case s.retry <- struct{}{}:
	default:
	}
}

// Close tears the subscription down. Run returns shortly after.
func (s *Subscriber) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// Run drives the subscription until ctx ends or Close is called. It returns
// nil on a deliberate shutdown and ErrGaveUp when the context ends while
// parked in StateGaveUp.
func (s *Subscriber) Run(ctx context.Context) error {
	defer close(s.frames)
	defer s.setState(StateDisconnected)

	for {
		select {
		case <-ctx.Done():
			return s.exitErr(ctx)
		case <-s.closed:
			return nil
		default:
		}

		s.setState(StateConnecting)
		conn, err := s.dial(ctx)
		if err == nil {
			s.setState(StateConnected)
			s.readLoop(ctx, conn)
			s.setState(StateDisconnected)
		}

		// A failed dial and a dropped connection both consume one attempt.
		s.mu.Lock()
		s.attempts++
		exhausted := s.attempts >= s.cfg.MaxAttempts
		s.mu.Unlock()

		if exhausted {
			s.setState(StateGaveUp)
			select {
			case <-s.retry:
				s.mu.Lock()
				s.attempts = 0
				s.mu.Unlock()
				continue
			case <-ctx.Done():
				return s.exitErr(ctx)
			case <-s.closed:
				return nil
			}
		}

		select {
		case <-time.After(s.cfg.ReconnectInterval):
		case <-ctx.Done():
			return s.exitErr(ctx)
		case <-s.closed:
			return nil
		}
	}
}

func (s *Subscriber) exitErr(ctx context.Context) error {
	if s.State() == StateGaveUp {
		return ErrGaveUp
	}
	return ctx.Err()
}

// readLoop consumes frames until the transport drops or shutdown is
// requested. Ping control frames are answered by the default pong handler
// inside ReadMessage. The first frame proves the connection is live and
// resets the attempt counter.
func (s *Subscriber) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-s.closed:
		case <-done:
		}
		_ = conn.Close()
	}()
	defer close(done)

	established := false
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("client: connection dropped: %v", err)
			}
			return
		}
		if !established {
			established = true
			s.mu.Lock()
			s.attempts = 0
			s.mu.Unlock()
		}
		var frame Frame
		if err := json.Unmarshal(payload, &frame); err != nil {
			log.Printf("client: malformed frame ignored: %v", err)
			continue
		}
		select {
		case s.frames <- frame:
		case <-ctx.Done():
			return
		case <-s.closed:
			return
		}
	}
}
