package usecase

import (
	"context"
	"fmt"
	"time"

	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// SweepNotificationsUseCase deletes notifications older than the retention
// age. Runs from the background sweep task, never from a request path.
type SweepNotificationsUseCase struct {
	Notifications repository.NotificationRepository
	Retention     time.Duration
}

func NewSweepNotificationsUseCase(notifications repository.NotificationRepository, retention time.Duration) *SweepNotificationsUseCase {
	return &SweepNotificationsUseCase{Notifications: notifications, Retention: retention}
}

// Execute returns the number of rows removed.
func (uc *SweepNotificationsUseCase) Execute(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-uc.Retention)
	swept, err := uc.Notifications.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return swept, nil
}
