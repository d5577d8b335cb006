package usecase

import (
	"context"
	"fmt"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// ListNotificationsInput pages through a user's notifications, newest first.
type ListNotificationsInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListNotificationsUseCase is the recovery path for missed live pushes:
// everything persisted is readable here regardless of delivery outcome.
type ListNotificationsUseCase struct {
	Notifications repository.NotificationRepository
}

func NewListNotificationsUseCase(notifications repository.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Notifications: notifications}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, in ListNotificationsInput) ([]collab.Notification, error) {
	if in.UserID == "" {
		return nil, collab.ErrMissingField
	}
	out, err := uc.Notifications.ListByUser(ctx, in.UserID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return out, nil
}
