package adapter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go-collab/internal/infrastructure/cache/port"
	"go-collab/internal/pkg/collab/application/usecase"
)

const unreadKeyPrefix = "collab:unread:"

// unreadTTL bounds staleness: after expiry the next read falls back to the
// database and rewarms the key.
const unreadTTL = 12 * time.Hour

// UnreadCounts keeps per-user unread notification counters in the cache.
// All methods degrade gracefully: callers treat errors as a cache miss.
type UnreadCounts struct {
	cache port.Cache
}

func NewUnreadCounts(cache port.Cache) *UnreadCounts {
	return &UnreadCounts{cache: cache}
}

var _ usecase.UnreadCounter = (*UnreadCounts)(nil)

func (u *UnreadCounts) Incr(ctx context.Context, userID string) error {
	// Only bump a warm key. Incrementing a cold one would seed the counter
	// at 1 regardless of what the database says.
	if _, err := u.cache.Get(ctx, unreadKeyPrefix+userID); err != nil {
		if errors.Is(err, port.ErrMiss) {
			return nil
		}
		return err
	}
	_, err := u.cache.Incr(ctx, unreadKeyPrefix+userID)
	return err
}

func (u *UnreadCounts) Forget(ctx context.Context, userID string) error {
	_, err := u.cache.Del(ctx, unreadKeyPrefix+userID)
	return err
}

func (u *UnreadCounts) Get(ctx context.Context, userID string) (int64, bool, error) {
	raw, err := u.cache.Get(ctx, unreadKeyPrefix+userID)
	if errors.Is(err, port.ErrMiss) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Corrupt entry; drop it so the next read rewarms from the database.
		_, _ = u.cache.Del(ctx, unreadKeyPrefix+userID)
		return 0, false, nil
	}
	return count, true, nil
}

func (u *UnreadCounts) Put(ctx context.Context, userID string, count int64) error {
	return u.cache.Set(ctx, unreadKeyPrefix+userID, strconv.FormatInt(count, 10), unreadTTL)
}
