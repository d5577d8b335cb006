package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// AssignUserInput adds a user to an activity's assignee set.
type AssignUserInput struct {
	ActivityID string
	UserID     string
	ActorID    string
}

// AssignUserUseCase is idempotent: assigning an already-assigned user is a
// no-op and emits no duplicate event.
type AssignUserUseCase struct {
	Activities repository.ActivityRepository
	Notifier   Notifier
}

func NewAssignUserUseCase(activities repository.ActivityRepository, notifier Notifier) *AssignUserUseCase {
	return &AssignUserUseCase{Activities: activities, Notifier: notifier}
}

func (uc *AssignUserUseCase) Execute(ctx context.Context, in AssignUserInput) (*collab.Activity, error) {
	if in.ActivityID == "" || in.UserID == "" {
		return nil, collab.ErrMissingField
	}

	changed := false
	activity, err := uc.Activities.Mutate(ctx, in.ActivityID, func(a *collab.Activity, _ repository.RemarkAppender) error {
		if a.Assign(in.UserID) {
			changed = true
			a.UpdatedAt = time.Now().UTC()
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, collab.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if changed && uc.Notifier != nil {
		uc.Notifier.Notify(ctx, collab.Event{
			Type:       collab.EventMemberAssigned,
			TeamID:     activity.TeamID,
			ActivityID: activity.ID,
			ActorID:    in.ActorID,
			SubjectID:  in.UserID,
			Title:      activity.Title,
		})
	}
	return activity, nil
}
