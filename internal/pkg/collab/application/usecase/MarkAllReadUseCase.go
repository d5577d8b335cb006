package usecase

import (
	"context"
	"fmt"
	"log"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// MarkAllReadInput identifies the user whose notifications are all marked read.
type MarkAllReadInput struct {
	UserID string
}

// MarkAllReadUseCase marks every unread notification of the user as read.
type MarkAllReadUseCase struct {
	Notifications repository.NotificationRepository
	Unread        UnreadCounter
}

func NewMarkAllReadUseCase(notifications repository.NotificationRepository, unread UnreadCounter) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{Notifications: notifications, Unread: unread}
}

func (uc *MarkAllReadUseCase) Execute(ctx context.Context, in MarkAllReadInput) error {
	if in.UserID == "" {
		return collab.ErrMissingField
	}
	if err := uc.Notifications.MarkAllRead(ctx, in.UserID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.Unread != nil {
		if err := uc.Unread.Put(ctx, in.UserID, 0); err != nil {
			log.Printf("unread: cache reset for %s: %v", in.UserID, err)
		}
	}
	return nil
}
