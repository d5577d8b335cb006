package usecase

import (
	"context"
	"fmt"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"
)

// ListMembersInput wraps the team identifier to fetch its member IDs.
type ListMembersInput struct {
	TeamID string
}

// ListMembersUseCase returns member user IDs ordered by join time.
type ListMembersUseCase struct {
	Teams repository.TeamRepository
}

func NewListMembersUseCase(teams repository.TeamRepository) *ListMembersUseCase {
	return &ListMembersUseCase{Teams: teams}
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, in ListMembersInput) ([]string, error) {
	if in.TeamID == "" {
		return nil, collab.ErrMissingField
	}
	ids, err := uc.Teams.ListMemberIDs(ctx, in.TeamID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return ids, nil
}
