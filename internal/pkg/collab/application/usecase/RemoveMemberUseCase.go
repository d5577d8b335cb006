package usecase

import (
	"context"
	"errors"
	"fmt"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// RemoveMemberInput removes one user from a team.
type RemoveMemberInput struct {
	TeamID  string
	UserID  string
	ActorID string
}

// RemoveMemberUseCase removes the membership if present and emits
// MemberRemoved only on actual change; removing a non-member is a no-op.
// Past notifications about the team remain untouched; they are historical
// records, not membership projections.
type RemoveMemberUseCase struct {
	Teams    repository.TeamRepository
	Notifier Notifier
}

func NewRemoveMemberUseCase(teams repository.TeamRepository, notifier Notifier) *RemoveMemberUseCase {
	return &RemoveMemberUseCase{Teams: teams, Notifier: notifier}
}

// Execute returns whether a membership was actually removed.
func (uc *RemoveMemberUseCase) Execute(ctx context.Context, in RemoveMemberInput) (bool, error) {
	if in.TeamID == "" || in.UserID == "" {
		return false, collab.ErrMissingField
	}

	team, err := uc.Teams.FindByID(ctx, in.TeamID)
	if err != nil {
		if errors.Is(err, collab.ErrNotFound) {
			return false, err
		}
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	removed, err := uc.Teams.RemoveMember(ctx, in.TeamID, in.UserID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !removed {
		return false, nil
	}

	if uc.Notifier != nil {
		uc.Notifier.Notify(ctx, collab.Event{
			Type:      collab.EventMemberRemoved,
			TeamID:    in.TeamID,
			ActorID:   in.ActorID,
			SubjectID: in.UserID,
			TeamName:  team.Name,
		})
	}
	return true, nil
}
