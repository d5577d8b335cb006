package realtime

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config tunes the delivery hub and its connections.
// Zero values are replaced with defaults by withDefaults.
type Config struct {
	// HeartbeatInterval is how often the server pings each connection.
	HeartbeatInterval time.Duration
	// MaxMissedHeartbeats is the number of unanswered pings after which a
	// connection is proactively closed and unregistered.
	MaxMissedHeartbeats int
	// WriteTimeout bounds every websocket write so a dead peer fails fast
	// instead of hanging the dispatching task.
	WriteTimeout time.Duration
	// SendBuffer is the per-connection outbound queue size.
	SendBuffer int
}

const (
	defaultHeartbeatInterval   = 30 * time.Second
	defaultMaxMissedHeartbeats = 2
	defaultWriteTimeout        = 10 * time.Second
	defaultSendBuffer          = 128
)

// ConfigFromEnv reads hub settings from the environment:
// - HEARTBEAT_INTERVAL: Go duration (default 30s)
// - MAX_MISSED_HEARTBEATS: int (default 2)
// - WS_WRITE_TIMEOUT: Go duration (default 10s)
func ConfigFromEnv() Config {
	cfg := Config{}
	if v := strings.TrimSpace(os.Getenv("HEARTBEAT_INTERVAL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HeartbeatInterval = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("MAX_MISSED_HEARTBEATS")); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			cfg.MaxMissedHeartbeats = i
		}
	}
	if v := strings.TrimSpace(os.Getenv("WS_WRITE_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.WriteTimeout = d
		}
	}
	return cfg.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = defaultHeartbeatInterval
	}
	if c.MaxMissedHeartbeats <= 0 {
		c.MaxMissedHeartbeats = defaultMaxMissedHeartbeats
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = defaultSendBuffer
	}
	return c
}
