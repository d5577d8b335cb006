package usecase

import (
	"context"
	"errors"
	"fmt"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// AddRemarkInput appends a remark to an activity.
type AddRemarkInput struct {
	ActivityID string
	AuthorID   string
	Text       string
}

// AddRemarkUseCase appends a remark and notifies the activity's team members.
// Authors must belong to the activity's team; the creator is always allowed.
type AddRemarkUseCase struct {
	Activities repository.ActivityRepository
	Teams      repository.TeamRepository
	Notifier   Notifier
}

func NewAddRemarkUseCase(activities repository.ActivityRepository, teams repository.TeamRepository, notifier Notifier) *AddRemarkUseCase {
	return &AddRemarkUseCase{Activities: activities, Teams: teams, Notifier: notifier}
}

func (uc *AddRemarkUseCase) Execute(ctx context.Context, in AddRemarkInput) (*collab.Remark, error) {
	remark, err := collab.NewRemark(collab.Remark{
		ActivityID: in.ActivityID,
		AuthorID:   in.AuthorID,
		Text:       in.Text,
	})
	if err != nil {
		return nil, err
	}

	activity, err := uc.Activities.FindByID(ctx, in.ActivityID)
	if err != nil {
		if errors.Is(err, collab.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if activity.CreatorID != in.AuthorID {
		member, err := uc.Teams.IsMember(ctx, activity.TeamID, in.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !member {
			return nil, collab.ErrNotMember
		}
	}

	id, err := uc.Activities.SaveRemark(ctx, *remark)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	remark.ID = id

	if uc.Notifier != nil {
		uc.Notifier.Notify(ctx, collab.Event{
			Type:       collab.EventRemarkAdded,
			TeamID:     activity.TeamID,
			ActivityID: activity.ID,
			ActorID:    in.AuthorID,
			Title:      activity.Title,
		})
	}
	return remark, nil
}
