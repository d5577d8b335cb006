package usecase

import (
	"context"
	"errors"
	"fmt"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// AddMembersInput adds a batch of users to a team.
type AddMembersInput struct {
	TeamID  string
	UserIDs []string
	ActorID string
}

// AddMembersUseCase adds each user not already a member and emits one
// MemberAdded event per actually-added user. IDs already members (or
// duplicated in the input) are silently skipped: a deliberate idempotence
// guarantee, not an error.
type AddMembersUseCase struct {
	Teams    repository.TeamRepository
	Notifier Notifier
}

func NewAddMembersUseCase(teams repository.TeamRepository, notifier Notifier) *AddMembersUseCase {
	return &AddMembersUseCase{Teams: teams, Notifier: notifier}
}

// Execute returns the IDs that were actually added.
func (uc *AddMembersUseCase) Execute(ctx context.Context, in AddMembersInput) ([]string, error) {
	if in.TeamID == "" {
		return nil, collab.ErrMissingField
	}

	team, err := uc.Teams.FindByID(ctx, in.TeamID)
	if err != nil {
		if errors.Is(err, collab.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var added []string
	for _, userID := range dedupe(in.UserIDs) {
		inserted, err := uc.Teams.AddMember(ctx, collab.Membership{TeamID: in.TeamID, UserID: userID})
		if err != nil {
			return added, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !inserted {
			continue
		}
		added = append(added, userID)

		if uc.Notifier != nil {
			uc.Notifier.Notify(ctx, collab.Event{
				Type:      collab.EventMemberAdded,
				TeamID:    in.TeamID,
				ActorID:   in.ActorID,
				SubjectID: userID,
				TeamName:  team.Name,
			})
		}
	}
	return added, nil
}
