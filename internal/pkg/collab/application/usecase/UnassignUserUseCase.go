package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// UnassignUserInput removes a user from an activity's assignee set.
type UnassignUserInput struct {
	ActivityID string
	UserID     string
	ActorID    string
}

// UnassignUserUseCase is idempotent: unassigning a user who is not assigned
// is a no-op and emits no event.
type UnassignUserUseCase struct {
	Activities repository.ActivityRepository
	Notifier   Notifier
}

func NewUnassignUserUseCase(activities repository.ActivityRepository, notifier Notifier) *UnassignUserUseCase {
	return &UnassignUserUseCase{Activities: activities, Notifier: notifier}
}

func (uc *UnassignUserUseCase) Execute(ctx context.Context, in UnassignUserInput) (*collab.Activity, error) {
	if in.ActivityID == "" || in.UserID == "" {
		return nil, collab.ErrMissingField
	}

	changed := false
	activity, err := uc.Activities.Mutate(ctx, in.ActivityID, func(a *collab.Activity, _ repository.RemarkAppender) error {
		if a.Unassign(in.UserID) {
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
			Type:       collab.EventMemberUnassigned,
			TeamID:     activity.TeamID,
			ActivityID: activity.ID,
			ActorID:    in.ActorID,
			SubjectID:  in.UserID,
			Title:      activity.Title,
		})
	}
	return activity, nil
}
