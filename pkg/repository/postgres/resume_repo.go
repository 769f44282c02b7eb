package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkraev/resumeforge/pkg/resume"
)

// ResumeRepository stores resume documents as JSONB.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) (*ResumeRepository, error) {
	r := &ResumeRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ResumeRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS resumes (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	content JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resumes_owner ON resumes (owner_id, created_at DESC);
`)
	return err
}

func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (id, owner_id, title, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, rs.ID, rs.OwnerID, rs.Title, rs.Content, rs.CreatedAt, rs.UpdatedAt)
	return err
}

func (r *ResumeRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, title, content, created_at, updated_at
FROM resumes WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	return scanResume(row)
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]resume.Resume, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, title, content, created_at, updated_at
FROM resumes WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []resume.Resume
	for rows.Next() {
		m, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *ResumeRepository) Update(ctx context.Context, rs resume.Resume) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE resumes SET title = $3, content = $4, updated_at = $5
WHERE id = $1 AND owner_id = $2
`, rs.ID, rs.OwnerID, rs.Title, rs.Content, rs.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}
	return nil
}

func (r *ResumeRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM resumes WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}
	return nil
}

func scanResume(row pgx.Row) (resume.Resume, error) {
	var m resume.Resume
	var created, updated time.Time
	if err := row.Scan(&m.ID, &m.OwnerID, &m.Title, &m.Content, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, resume.ErrNotFound
		}
		return resume.Resume{}, err
	}
	m.CreatedAt = created.UTC()
	m.UpdatedAt = updated.UTC()
	return m, nil
}
