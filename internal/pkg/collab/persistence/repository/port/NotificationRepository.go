package repository

import (
	"context"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Save(ctx context.Context, n collab.Notification) (string, error)

	// ListByUser returns the user's notifications newest first.
	ListByUser(ctx context.Context, userID string, limit int, offset int) ([]collab.Notification, error)

	CountUnread(ctx context.Context, userID string) (int64, error)

	// MarkRead flips the read flag on one notification owned by userID.
	// Returns collab.ErrNotFound if the row does not exist or belongs to
	// someone else.
	MarkRead(ctx context.Context, id string, userID string) error

	MarkAllRead(ctx context.Context, userID string) error

	// DeleteOlderThan removes notifications created before cutoff and returns
	// the number of rows swept.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
