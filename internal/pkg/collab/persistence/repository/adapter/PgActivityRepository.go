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

type PgActivityRepository struct {
	pool *pgxpool.Pool
}

func NewPgActivityRepository(pool *pgxpool.Pool) *PgActivityRepository {
	return &PgActivityRepository{pool: pool}
}

var _ repository.ActivityRepository = (*PgActivityRepository)(nil)

func (r *PgActivityRepository) Create(ctx context.Context, a collab.Activity) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgActivityRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO collab.activity (team_id, title, description, status, creator_id, target_date, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5::uuid, $6, $7, $8)
		RETURNING id::text
	`, a.TeamID, a.Title, a.Description, a.Status, a.CreatorID, a.TargetDate, a.CreatedAt, a.UpdatedAt).Scan(&id)
	if err != nil {
		return "", err
	}
	if err := replaceAssignees(ctx, tx, id, a.AssigneeIDs); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PgActivityRepository) FindByID(ctx context.Context, id string) (*collab.Activity, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgActivityRepository: nil pool")
	}
	a, err := scanActivity(ctx, r.pool, id, false)
	if err != nil {
		return nil, err
	}
	a.AssigneeIDs, err = listAssignees(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PgActivityRepository) Update(ctx context.Context, a collab.Activity) error {
	if r == nil || r.pool == nil {
		return errors.New("PgActivityRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := updateActivityTx(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Mutate serializes concurrent mutations of the same activity on the postgres
// row lock: the SELECT ... FOR UPDATE blocks until any competing transaction
// commits, so fn always sees the latest committed state.
func (r *PgActivityRepository) Mutate(ctx context.Context, id string, fn func(a *collab.Activity, remarks repository.RemarkAppender) error) (*collab.Activity, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgActivityRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	a, err := scanActivity(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	a.AssigneeIDs, err = listAssignees(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	appender := &txRemarkAppender{ctx: ctx, tx: tx}
	if err := fn(a, appender); err != nil {
		return nil, err
	}

	if err := updateActivityTx(ctx, tx, *a); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PgActivityRepository) SaveRemark(ctx context.Context, rm collab.Remark) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgActivityRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO collab.remark (activity_id, author_id, text, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text
	`, rm.ActivityID, rm.AuthorID, rm.Text, rm.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgActivityRepository) ListRemarks(ctx context.Context, activityID string) ([]collab.Remark, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgActivityRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, activity_id::text, author_id::text, text, created_at
		FROM collab.remark
		WHERE activity_id = $1::uuid
		ORDER BY created_at, id
	`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var remarks []collab.Remark
	for rows.Next() {
		var rm collab.Remark
		if err := rows.Scan(&rm.ID, &rm.ActivityID, &rm.AuthorID, &rm.Text, &rm.CreatedAt); err != nil {
			return nil, err
		}
		remarks = append(remarks, rm)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return remarks, nil
}

func scanActivity(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, id string, forUpdate bool) (*collab.Activity, error) {
	sql := `
		SELECT id::text, team_id::text, title, description, status, creator_id::text, target_date, created_at, updated_at
		FROM collab.activity
		WHERE id = $1::uuid
	`
	if forUpdate {
		sql += " FOR UPDATE"
	}
	var a collab.Activity
	err := q.QueryRow(ctx, sql, id).Scan(
		&a.ID, &a.TeamID, &a.Title, &a.Description, &a.Status,
		&a.CreatorID, &a.TargetDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, collab.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func listAssignees(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, activityID string) ([]string, error) {
	rows, err := q.Query(ctx, `
		SELECT user_id::text
		FROM collab.activity_assignee
		WHERE activity_id = $1::uuid
		ORDER BY position
	`, activityID)
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
	return ids, rows.Err()
}

func updateActivityTx(ctx context.Context, tx pgx.Tx, a collab.Activity) error {
	ct, err := tx.Exec(ctx, `
		UPDATE collab.activity
		SET title = $2, description = $3, status = $4, target_date = $5, updated_at = $6
		WHERE id = $1::uuid
	`, a.ID, a.Title, a.Description, a.Status, a.TargetDate, a.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return collab.ErrNotFound
	}
	return replaceAssignees(ctx, tx, a.ID, a.AssigneeIDs)
}

// replaceAssignees rewrites the assignee set preserving assignment order via
// an explicit position column.
func replaceAssignees(ctx context.Context, tx pgx.Tx, activityID string, assigneeIDs []string) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM collab.activity_assignee WHERE activity_id = $1::uuid
	`, activityID); err != nil {
		return err
	}
	for i, uid := range assigneeIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO collab.activity_assignee (activity_id, user_id, position)
			VALUES ($1::uuid, $2::uuid, $3)
		`, activityID, uid, i); err != nil {
			return err
		}
	}
	return nil
}

type txRemarkAppender struct {
	ctx context.Context
	tx  pgx.Tx
}

func (a *txRemarkAppender) Append(rm collab.Remark) error {
	if rm.CreatedAt.IsZero() {
		rm.CreatedAt = time.Now().UTC()
	}
	_, err := a.tx.Exec(a.ctx, `
		INSERT INTO collab.remark (activity_id, author_id, text, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
	`, rm.ActivityID, rm.AuthorID, rm.Text, rm.CreatedAt)
	return err
}
