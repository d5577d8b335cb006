package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// MarkReadInput flips the read flag on one notification.
type MarkReadInput struct {
	NotificationID string
	UserID         string
}

// MarkReadUseCase marks a notification read and drops the cached unread
// count so the next badge read recomputes it.
type MarkReadUseCase struct {
	Notifications repository.NotificationRepository
	Unread        UnreadCounter
}

func NewMarkReadUseCase(notifications repository.NotificationRepository, unread UnreadCounter) *MarkReadUseCase {
	return &MarkReadUseCase{Notifications: notifications, Unread: unread}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, in MarkReadInput) error {
	if in.NotificationID == "" || in.UserID == "" {
		return collab.ErrMissingField
	}
	if err := uc.Notifications.MarkRead(ctx, in.NotificationID, in.UserID); err != nil {
		if errors.Is(err, collab.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.Unread != nil {
		if err := uc.Unread.Forget(ctx, in.UserID); err != nil {
			log.Printf("unread: cache forget for %s: %v", in.UserID, err)
		}
	}
	return nil
}
