package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// TransitionActivityInput requests a status change on an activity.
type TransitionActivityInput struct {
	ActivityID string
	NewStatus  collab.Status
	ActorID    string
	// RemarkText, when non-empty, is appended as a caller remark in addition
	// to the system audit remark.
	RemarkText string
}

// TransitionActivityUseCase drives the activity state machine.
//
// On success the activity's status is updated, exactly one system remark
// ("Status changed to: <status>") is appended authored by the actor, any
// caller remark is appended separately, and exactly one StatusChanged event
// is emitted after the transaction commits.
type TransitionActivityUseCase struct {
	Activities repository.ActivityRepository
	Notifier   Notifier
}

func NewTransitionActivityUseCase(activities repository.ActivityRepository, notifier Notifier) *TransitionActivityUseCase {
	return &TransitionActivityUseCase{Activities: activities, Notifier: notifier}
}

func (uc *TransitionActivityUseCase) Execute(ctx context.Context, in TransitionActivityInput) (*collab.Activity, error) {
	if in.ActivityID == "" || in.ActorID == "" {
		return nil, collab.ErrMissingField
	}
	// Reject before touching storage: a malformed target must have no side effects.
	if !collab.ValidStatus(in.NewStatus) {
		return nil, collab.ErrInvalidStatus
	}

	var oldStatus collab.Status
	activity, err := uc.Activities.Mutate(ctx, in.ActivityID, func(a *collab.Activity, remarks repository.RemarkAppender) error {
		now := time.Now().UTC()
		old, err := a.Transition(in.NewStatus, now)
		if err != nil {
			return err
		}
		oldStatus = old

		if err := remarks.Append(collab.Remark{
			ActivityID: a.ID,
			AuthorID:   in.ActorID,
			Text:       collab.SystemRemarkText(in.NewStatus),
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		if text := strings.TrimSpace(in.RemarkText); text != "" {
			// Caller remark ordered after the system remark.
			if err := remarks.Append(collab.Remark{
				ActivityID: a.ID,
				AuthorID:   in.ActorID,
				Text:       text,
				CreatedAt:  now.Add(time.Millisecond),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, collab.ErrNotFound) || errors.Is(err, collab.ErrInvalidStatus) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Emitted exactly once, strictly after the state is durable.
	if uc.Notifier != nil {
		uc.Notifier.Notify(ctx, collab.Event{
			Type:        collab.EventStatusChanged,
			TeamID:      activity.TeamID,
			ActivityID:  activity.ID,
			ActorID:     in.ActorID,
			Title:       activity.Title,
			AssigneeIDs: append([]string(nil), activity.AssigneeIDs...),
			OldStatus:   oldStatus,
			NewStatus:   activity.Status,
		})
	}
	return activity, nil
}
