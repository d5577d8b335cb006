package adapter

import (
	"context"
	"errors"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgTeamRepository struct {
	pool *pgxpool.Pool
}

func NewPgTeamRepository(pool *pgxpool.Pool) *PgTeamRepository {
	return &PgTeamRepository{pool: pool}
}

var _ repository.TeamRepository = (*PgTeamRepository)(nil)

func (r *PgTeamRepository) FindByID(ctx context.Context, id string) (*collab.Team, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgTeamRepository: nil pool")
	}
	var t collab.Team
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, domain_id::text, owner_id::text, created_at
		FROM collab.team
		WHERE id = $1::uuid
	`, id).Scan(&t.ID, &t.Name, &t.DomainID, &t.OwnerID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, collab.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgTeamRepository) AddMember(ctx context.Context, m collab.Membership) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgTeamRepository: nil pool")
	}
	joined := m.JoinedAt
	if joined.IsZero() {
		joined = time.Now().UTC()
	}
	// ON CONFLICT DO NOTHING gives the idempotence guarantee: a duplicate
	// insert affects zero rows instead of erroring.
	ct, err := r.pool.Exec(ctx, `
		INSERT INTO collab.membership (team_id, user_id, joined_at)
		VALUES ($1::uuid, $2::uuid, $3)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`, m.TeamID, m.UserID, joined)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgTeamRepository) RemoveMember(ctx context.Context, teamID string, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgTeamRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM collab.membership
		WHERE team_id = $1::uuid AND user_id = $2::uuid
	`, teamID, userID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgTeamRepository) ListMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgTeamRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT user_id::text
		FROM collab.membership
		WHERE team_id = $1::uuid
		ORDER BY joined_at, user_id
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return ids, nil
}

func (r *PgTeamRepository) IsMember(ctx context.Context, teamID string, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgTeamRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM collab.membership
			WHERE team_id = $1::uuid AND user_id = $2::uuid
		)
	`, teamID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
