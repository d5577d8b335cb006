package repository

import (
	"context"

	collab "go-collab/internal/pkg/collab/application/domain"
)

// TeamRepository defines persistence operations for teams and memberships.
type TeamRepository interface {
	FindByID(ctx context.Context, id string) (*collab.Team, error)

	// AddMember inserts a membership row. Returns false (and no error) when
	// the user is already a member, so callers get idempotence for free.
	AddMember(ctx context.Context, m collab.Membership) (bool, error)

	// RemoveMember deletes a membership row. Returns false (and no error)
	// when no such membership exists.
	RemoveMember(ctx context.Context, teamID string, userID string) (bool, error)

	// ListMemberIDs returns member user IDs ordered by join time then user id,
	// so fan-out recipient order is stable.
	ListMemberIDs(ctx context.Context, teamID string) ([]string, error)

	IsMember(ctx context.Context, teamID string, userID string) (bool, error)
}
