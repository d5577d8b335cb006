package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// CreateActivityInput carries the data needed to open a new activity.
type CreateActivityInput struct {
	TeamID      string
	Title       string
	Description string
	CreatorID   string
	AssigneeIDs []string
	TargetDate  *time.Time
}

// CreateActivityUseCase persists a new activity and notifies its assignees.
type CreateActivityUseCase struct {
	Activities repository.ActivityRepository
	Teams      repository.TeamRepository
	Notifier   Notifier
}

func NewCreateActivityUseCase(activities repository.ActivityRepository, teams repository.TeamRepository, notifier Notifier) *CreateActivityUseCase {
	return &CreateActivityUseCase{Activities: activities, Teams: teams, Notifier: notifier}
}

// Execute validates, persists and then emits ActivityCreated (write-then-emit).
func (uc *CreateActivityUseCase) Execute(ctx context.Context, in CreateActivityInput) (*collab.Activity, error) {
	if _, err := uc.Teams.FindByID(ctx, in.TeamID); err != nil {
		if errors.Is(err, collab.ErrNotFound) {
			return nil, collab.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	activity, err := collab.NewActivity(collab.Activity{
		TeamID:      in.TeamID,
		Title:       in.Title,
		Description: in.Description,
		CreatorID:   in.CreatorID,
		TargetDate:  in.TargetDate,
	})
	if err != nil {
		return nil, err
	}
	for _, id := range in.AssigneeIDs {
		activity.Assign(id)
	}

	id, err := uc.Activities.Create(ctx, *activity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	activity.ID = id

	if uc.Notifier != nil {
		uc.Notifier.Notify(ctx, collab.Event{
			Type:        collab.EventActivityCreated,
			TeamID:      activity.TeamID,
			ActivityID:  activity.ID,
			ActorID:     activity.CreatorID,
			Title:       activity.Title,
			AssigneeIDs: append([]string(nil), activity.AssigneeIDs...),
		})
	}
	return activity, nil
}
