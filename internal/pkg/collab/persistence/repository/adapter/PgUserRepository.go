package adapter

import (
	"context"
	"errors"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*collab.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	var u collab.User
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, role, active, created_at
		FROM collab.app_user
		WHERE id = $1::uuid
	`, id).Scan(&u.ID, &u.Name, &u.Role, &u.Active, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, collab.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PgUserRepository) FirstActiveAdmin(ctx context.Context) (*collab.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	var u collab.User
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, role, active, created_at
		FROM collab.app_user
		WHERE role = 'admin' AND active
		ORDER BY created_at, id
		LIMIT 1
	`).Scan(&u.ID, &u.Name, &u.Role, &u.Active, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, collab.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
