package usecase

import (
	"context"

	collab "go-collab/internal/pkg/collab/application/domain"
)

// Delivery pushes a payload to every live connection of a user and reports
// how many connections received it. Implemented by the realtime hub.
// Delivery failures stay inside the implementation; callers never see them.
type Delivery interface {
	Push(userID string, payload []byte) int
}

// Notifier hands a committed domain event to the fan-out engine. Mutating use
// cases call it strictly after their own state change is durable, and its
// outcome never affects the triggering mutation.
type Notifier interface {
	Notify(ctx context.Context, e collab.Event)
}

// UnreadCounter maintains the cached per-user unread notification count.
// All operations are best effort; the persisted count is authoritative.
type UnreadCounter interface {
	// Incr bumps the cached count if present.
	Incr(ctx context.Context, userID string) error
	// Forget drops the cached count so the next read recomputes it.
	Forget(ctx context.Context, userID string) error
	// Get returns the cached count; ok is false on a miss.
	Get(ctx context.Context, userID string) (count int64, ok bool, err error)
	// Put stores a freshly computed count.
	Put(ctx context.Context, userID string, count int64) error
}
