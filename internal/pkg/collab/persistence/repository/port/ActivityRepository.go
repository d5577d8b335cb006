package repository

import (
	"context"

	collab "go-collab/internal/pkg/collab/application/domain"
)

// ActivityRepository defines persistence operations for activities and remarks.
//
// Mutating use cases load the row with ForUpdate inside a transaction so two
// simultaneous mutations of the same activity serialize on the row lock
// instead of losing updates.
type ActivityRepository interface {
	Create(ctx context.Context, a collab.Activity) (string, error)
	FindByID(ctx context.Context, id string) (*collab.Activity, error)

	// Update persists status, description, target date, updated_at and the
	// assignee set of an existing activity.
	Update(ctx context.Context, a collab.Activity) error

	// Mutate runs fn against the activity while holding its row lock and
	// persists the result in the same transaction. fn may append remarks via
	// the passed RemarkAppender.
	Mutate(ctx context.Context, id string, fn func(a *collab.Activity, remarks RemarkAppender) error) (*collab.Activity, error)

	SaveRemark(ctx context.Context, r collab.Remark) (string, error)
	ListRemarks(ctx context.Context, activityID string) ([]collab.Remark, error)
}

// RemarkAppender appends remarks inside the transaction opened by Mutate.
type RemarkAppender interface {
	Append(r collab.Remark) error
}
