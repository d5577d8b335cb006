package usecase

import (
	"context"
	"fmt"
	"log"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// UnreadCountInput identifies the user whose unread count is requested.
type UnreadCountInput struct {
	UserID string
}

// UnreadCountUseCase serves the unread badge. The cached count is used when
// present; on a miss the count is recomputed from storage and written back.
// Cache errors degrade to the storage path, never to a request failure.
type UnreadCountUseCase struct {
	Notifications repository.NotificationRepository
	Unread        UnreadCounter
}

func NewUnreadCountUseCase(notifications repository.NotificationRepository, unread UnreadCounter) *UnreadCountUseCase {
	return &UnreadCountUseCase{Notifications: notifications, Unread: unread}
}

func (uc *UnreadCountUseCase) Execute(ctx context.Context, in UnreadCountInput) (int64, error) {
	if in.UserID == "" {
		return 0, collab.ErrMissingField
	}

	if uc.Unread != nil {
		count, ok, err := uc.Unread.Get(ctx, in.UserID)
		if err != nil {
			log.Printf("unread: cache read for %s: %v", in.UserID, err)
		} else if ok {
			return count, nil
		}
	}

	count, err := uc.Notifications.CountUnread(ctx, in.UserID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Unread != nil {
		if err := uc.Unread.Put(ctx, in.UserID, count); err != nil {
			log.Printf("unread: cache write for %s: %v", in.UserID, err)
		}
	}
	return count, nil
}
