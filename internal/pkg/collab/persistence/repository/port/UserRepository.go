package repository

import (
	"context"

	collab "go-collab/internal/pkg/collab/application/domain"
)

// UserRepository defines read access to users consumed by this core.
// User creation/administration is owned by the identity service.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*collab.User, error)

	// FirstActiveAdmin returns the active admin with the earliest created_at
	// (ties broken by id). The status-change fan-out rule notifies exactly
	// this one admin.
	FirstActiveAdmin(ctx context.Context) (*collab.User, error)
}
